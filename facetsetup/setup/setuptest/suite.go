package setuptest

import (
	"context"
	"strings"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

/*
SuiteBase defines a re-usable set of tests that can be executed against
any type that implements setup.Store.
*/
type SuiteBase struct {
	store setup.Store
}

// SetStore configures the test-suite to run all tests against store.
func (s *SuiteBase) SetStore(store setup.Store) {
	s.store = store
}

func productSetup() *facet.Setup {
	return &facet.Setup{Facets: []facet.Definition{
		{Name: "Color", Children: []facet.Definition{{Name: "Size"}}},
		{Mode: facet.ModeRange, Name: "Price", Ranges: []string{"[0 TO 10]", "[10 TO 20]"}},
	}}
}

//TestUpsertAssignsID verifies that records without an ID get a generated one
func (s *SuiteBase) TestUpsertAssignsID(c *gc.C) {
	rec := &setup.Record{Setup: productSetup()}
	c.Assert(s.store.Upsert(context.TODO(), rec), gc.IsNil)
	c.Assert(strings.HasPrefix(rec.ID, setup.IDPrefix), gc.Equals, true, gc.Commentf("got ID %q", rec.ID))
	c.Assert(rec.UpdatedAt.IsZero(), gc.Equals, false)

	other := &setup.Record{Setup: productSetup()}
	c.Assert(s.store.Upsert(context.TODO(), other), gc.IsNil)
	c.Assert(other.ID, gc.Not(gc.Equals), rec.ID)
}

//TestUpsertAndFind verifies round-tripping and replacing a setup
func (s *SuiteBase) TestUpsertAndFind(c *gc.C) {
	rec := &setup.Record{ID: "facets/products", Setup: productSetup()}
	c.Assert(s.store.Upsert(context.TODO(), rec), gc.IsNil)

	got, err := s.store.Find(context.TODO(), "facets/products")
	c.Assert(err, gc.IsNil)
	c.Assert(got.ID, gc.Equals, "facets/products")
	c.Assert(got.Setup, gc.DeepEquals, productSetup())

	replacement := &setup.Record{ID: "facets/products", Setup: &facet.Setup{Facets: []facet.Definition{{Name: "Brand"}}}}
	c.Assert(s.store.Upsert(context.TODO(), replacement), gc.IsNil)

	got, err = s.store.Find(context.TODO(), "facets/products")
	c.Assert(err, gc.IsNil)
	c.Assert(got.Setup.Facets, gc.HasLen, 1)
	c.Assert(got.Setup.Facets[0].Name, gc.Equals, "Brand")
}

//TestStoreKeepsCopies verifies that callers cannot mutate stored setups
func (s *SuiteBase) TestStoreKeepsCopies(c *gc.C) {
	rec := &setup.Record{ID: "facets/copies", Setup: productSetup()}
	c.Assert(s.store.Upsert(context.TODO(), rec), gc.IsNil)
	rec.Setup.Facets[0].Name = "Mutated"

	got, err := s.store.Find(context.TODO(), "facets/copies")
	c.Assert(err, gc.IsNil)
	got.Setup.Facets[1].Ranges[0] = "[5 TO 6]"

	again, err := s.store.Find(context.TODO(), "facets/copies")
	c.Assert(err, gc.IsNil)
	c.Assert(again.Setup, gc.DeepEquals, productSetup())
}

//TestUpsertRejectsInvalidSetup verifies that malformed setups are never stored
func (s *SuiteBase) TestUpsertRejectsInvalidSetup(c *gc.C) {
	err := s.store.Upsert(context.TODO(), &setup.Record{ID: "facets/bad"})
	c.Assert(xerrors.Is(err, setup.ErrMissingSetup), gc.Equals, true)

	bad := &facet.Setup{Facets: []facet.Definition{{Ranges: []string{"[0 TO 1]"}}}}
	err = s.store.Upsert(context.TODO(), &setup.Record{ID: "facets/bad", Setup: bad})
	c.Assert(facet.IsInvalid(err), gc.Equals, true)

	_, err = s.store.Find(context.TODO(), "facets/bad")
	c.Assert(xerrors.Is(err, setup.ErrNotFound), gc.Equals, true)
}

//TestRejectedUpsertLeavesRecordUntouched verifies that a failed upsert assigns no ID
func (s *SuiteBase) TestRejectedUpsertLeavesRecordUntouched(c *gc.C) {
	bad := &facet.Setup{Facets: []facet.Definition{{Ranges: []string{"[0 TO 1]"}}}}
	for _, rec := range []*setup.Record{{}, {Setup: bad}} {
		c.Assert(s.store.Upsert(context.TODO(), rec), gc.NotNil)
		c.Assert(rec.ID, gc.Equals, "")
		c.Assert(rec.UpdatedAt.IsZero(), gc.Equals, true)
	}
}

//TestDelete verifies removal of stored and unknown setups
func (s *SuiteBase) TestDelete(c *gc.C) {
	c.Assert(s.store.Upsert(context.TODO(), &setup.Record{ID: "facets/gone", Setup: productSetup()}), gc.IsNil)
	c.Assert(s.store.Delete(context.TODO(), "facets/gone"), gc.IsNil)

	_, err := s.store.Find(context.TODO(), "facets/gone")
	c.Assert(xerrors.Is(err, setup.ErrNotFound), gc.Equals, true)

	err = s.store.Delete(context.TODO(), "facets/gone")
	c.Assert(xerrors.Is(err, setup.ErrNotFound), gc.Equals, true)
}
