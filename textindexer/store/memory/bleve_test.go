package memory

import (
	"context"
	"testing"

	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/brandonshearin/facetsearch/textindexer/index/indextest"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(InMemoryBleveTestSuite))

type InMemoryBleveTestSuite struct {
	indextest.SuiteBase
	idx *InMemoryBleveIndexer
}

func Test(t *testing.T) { gc.TestingT(t) }

func (s *InMemoryBleveTestSuite) SetUpTest(c *gc.C) {
	idx, err := NewInMemoryBleveIndexer()
	c.Assert(err, gc.IsNil)
	s.SetIndexer(idx)
	s.idx = idx
}

func (s *InMemoryBleveTestSuite) TearDownTest(c *gc.C) {
	c.Assert(s.idx.Close(), gc.IsNil)
}

func (s *InMemoryBleveTestSuite) TestQueryShapes(c *gc.C) {
	docs := []map[string]interface{}{
		{"Name": "Jonathan", "Tag": "Dark Red", "InStock": true, "Qty": 3.0},
		{"Name": "Joanna", "Tag": "Red", "InStock": false, "Qty": 7.0},
		{"Name": "Mark", "Tag": "Blue", "InStock": true, "Qty": 7.0},
	}
	for i, fields := range docs {
		c.Assert(s.idx.Index(&index.Document{ID: string(rune('a' + i)), Fields: fields}), gc.IsNil)
	}

	snap, err := s.idx.AcquireSnapshot(context.TODO())
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()
	all, err := snap.Parse("*:*")
	c.Assert(err, gc.IsNil)

	specs := []struct {
		text string
		exp  uint64
	}{
		{"Name:Jo*", 2},
		{"Name:J?anna", 1},
		{`Tag:"Dark Red"`, 1},
		{`Tag:Dark\ Red`, 1},
		{"InStock:true", 2},
		{"Qty:7", 2},
		{"Qty:[* TO 5}", 1},
		{"Name:[K TO N]", 1},
		{"Tag:(Red OR Blue) AND NOT InStock:false", 1},
		{"Mark", 1},
		{"Name:Jo* -InStock:true", 1},
		{"+InStock:true Name:Joanna", 2},
		{"Name:Jonathan Name:Mark -Qty:3", 1},
		{"-Name:Mark", 2},
		{"Name:Jonathan OR NOT Name:Jonathan", 0},
	}
	for _, spec := range specs {
		q, err := snap.Parse(spec.text)
		c.Assert(err, gc.IsNil, gc.Commentf("query %q", spec.text))
		count, err := snap.CountMatches(context.TODO(), all, q)
		c.Assert(err, gc.IsNil, gc.Commentf("query %q", spec.text))
		c.Assert(count, gc.Equals, spec.exp, gc.Commentf("query %q", spec.text))
	}
}

func (s *InMemoryBleveTestSuite) TestCancelledContext(c *gc.C) {
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := s.idx.AcquireSnapshot(ctx)
	c.Assert(xerrors.Is(err, context.Canceled), gc.Equals, true)
}

func (s *InMemoryBleveTestSuite) TestSnapshotCloseIsIdempotent(c *gc.C) {
	snap, err := s.idx.AcquireSnapshot(context.TODO())
	c.Assert(err, gc.IsNil)
	c.Assert(snap.Close(), gc.IsNil)
	c.Assert(snap.Close(), gc.IsNil)

	_, err = snap.CountMatches(context.TODO(), snap.TermQuery("Color", "Red"), snap.TermQuery("Color", "Red"))
	c.Assert(xerrors.Is(err, index.ErrSnapshotClosed), gc.Equals, true)
	_, err = snap.FieldValues(context.TODO(), "Color", 1)
	c.Assert(xerrors.Is(err, index.ErrSnapshotClosed), gc.Equals, true)
}

var _ = gc.Suite(new(CatalogTestSuite))

type CatalogTestSuite struct {
	cat *Catalog
}

func (s *CatalogTestSuite) SetUpTest(c *gc.C) {
	s.cat = NewCatalog()
}

func (s *CatalogTestSuite) TearDownTest(c *gc.C) {
	c.Assert(s.cat.Close(), gc.IsNil)
}

func (s *CatalogTestSuite) TestCreateAndLookup(c *gc.C) {
	_, err := s.cat.Index("products")
	c.Assert(xerrors.Is(err, index.ErrIndexNotFound), gc.Equals, true)

	created, err := s.cat.Create("products")
	c.Assert(err, gc.IsNil)
	again, err := s.cat.Create("products")
	c.Assert(err, gc.IsNil)
	c.Assert(again, gc.Equals, created)

	found, err := s.cat.Index("products")
	c.Assert(err, gc.IsNil)
	c.Assert(found, gc.Equals, created)

	_, err = s.cat.Create("orders")
	c.Assert(err, gc.IsNil)
	c.Assert(s.cat.Names(), gc.DeepEquals, []string{"orders", "products"})
}

func (s *InMemoryBleveTestSuite) TestNumericFieldValues(c *gc.C) {
	for i, qty := range []float64{3, 7, 7, 2.5, -40} {
		doc := &index.Document{ID: string(rune('a' + i)), Fields: map[string]interface{}{"Qty": qty}}
		c.Assert(s.idx.Index(doc), gc.IsNil)
	}

	snap, err := s.idx.AcquireSnapshot(context.TODO())
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	values, err := index.EnumerateFieldValues(context.TODO(), snap, "Qty", 10)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.DeepEquals, []string{"-40", "2.5", "3", "7"})

	values, err = index.EnumerateFieldValues(context.TODO(), snap, "Qty", 2)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.DeepEquals, []string{"-40", "2.5"})

	all, err := snap.Parse("")
	c.Assert(err, gc.IsNil)
	for value, exp := range map[string]uint64{"3": 1, "7": 2, "2.5": 1, "-40": 1, "8": 0} {
		count, err := snap.CountMatches(context.TODO(), all, snap.TermQuery("Qty", value))
		c.Assert(err, gc.IsNil, gc.Commentf("value %s", value))
		c.Assert(count, gc.Equals, exp, gc.Commentf("value %s", value))
	}
}

func (s *InMemoryBleveTestSuite) TestTextTermsAreKeptVerbatim(c *gc.C) {
	c.Assert(s.idx.Index(&index.Document{ID: "a", Fields: map[string]interface{}{"Code": " 123456789X"}}), gc.IsNil)

	snap, err := s.idx.AcquireSnapshot(context.TODO())
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	values, err := index.EnumerateFieldValues(context.TODO(), snap, "Code", 10)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.DeepEquals, []string{" 123456789X"})
}
