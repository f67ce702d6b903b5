package memory

import (
	"context"
	"testing"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/facetsetup/setup/setuptest"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(InMemorySetupStoreTestSuite))

type InMemorySetupStoreTestSuite struct {
	setuptest.SuiteBase
	store *InMemorySetupStore
}

func Test(t *testing.T) { gc.TestingT(t) }

func (s *InMemorySetupStoreTestSuite) SetUpTest(c *gc.C) {
	s.store = NewInMemorySetupStore()
	s.SetStore(s.store)
}

func (s *InMemorySetupStoreTestSuite) TestIDs(c *gc.C) {
	for _, id := range []string{"facets/b", "facets/a"} {
		rec := &setup.Record{ID: id, Setup: &facet.Setup{Facets: []facet.Definition{{Name: "Color"}}}}
		c.Assert(s.store.Upsert(context.TODO(), rec), gc.IsNil)
	}
	c.Assert(s.store.IDs(), gc.DeepEquals, []string{"facets/a", "facets/b"})
}
