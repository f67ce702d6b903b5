package facetquery

import (
	"context"
	"encoding/json"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	setupmemory "github.com/brandonshearin/facetsearch/facetsetup/store/memory"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	indexmemory "github.com/brandonshearin/facetsearch/textindexer/store/memory"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(BleveRunnerTestSuite))

// BleveRunnerTestSuite runs facet requests end to end against an in-memory
// bleve index.
type BleveRunnerTestSuite struct {
	catalog *indexmemory.Catalog
	setups  *setupmemory.InMemorySetupStore
	runner  *Runner
}

func (s *BleveRunnerTestSuite) SetUpTest(c *gc.C) {
	s.catalog = indexmemory.NewCatalog()
	s.setups = setupmemory.NewInMemorySetupStore()

	idx, err := s.catalog.Create("products")
	c.Assert(err, gc.IsNil)
	docs := []map[string]interface{}{
		{"Color": "Red", "Size": "L", "Price": 5.0},
		{"Color": "Red", "Size": "S", "Price": 8.0},
		{"Color": "Blue", "Size": "L", "Price": 15.0},
	}
	for i, fields := range docs {
		c.Assert(idx.Index(&index.Document{ID: string(rune('a' + i)), Fields: fields}), gc.IsNil)
	}

	c.Assert(s.setups.Upsert(context.TODO(), &setup.Record{
		ID: "facets/products",
		Setup: &facet.Setup{Facets: []facet.Definition{
			{Name: "Color", Children: []facet.Definition{{Name: "Size"}}},
			{Mode: facet.ModeRange, Name: "Price", Ranges: []string{"[0 TO 10]", "[11 TO 20]", "[21 TO 30]"},
				Children: []facet.Definition{{Name: "Color"}}},
		}},
	}), gc.IsNil)

	s.runner, err = NewRunner(Config{Setups: s.setups, Indexes: s.catalog, Workers: 2})
	c.Assert(err, gc.IsNil)
}

func (s *BleveRunnerTestSuite) TearDownTest(c *gc.C) {
	c.Assert(s.catalog.Close(), gc.IsNil)
}

func (s *BleveRunnerTestSuite) TestAllDocuments(c *gc.C) {
	res, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(err, gc.IsNil)

	out, err := json.Marshal(res)
	c.Assert(err, gc.IsNil)
	c.Assert(string(out), gc.Equals, `{"Color":[`+
		`{"range":"Blue","count":1,"children":{"Size":[{"range":"L","count":1}]}},`+
		`{"range":"Red","count":2,"children":{"Size":[{"range":"L","count":1},{"range":"S","count":1}]}}],`+
		`"Price":[`+
		`{"range":"[0 TO 10]","count":2,"children":{"Color":[{"range":"Red","count":2}]}},`+
		`{"range":"[11 TO 20]","count":1,"children":{"Color":[{"range":"Blue","count":1}]}}]}`)
}

func (s *BleveRunnerTestSuite) TestNarrowedBaseQuery(c *gc.C) {
	res, err := s.runner.GetFacets(context.TODO(), "products", "Size:L", "facets/products")
	c.Assert(err, gc.IsNil)

	c.Assert(valuesOf(c, res, "Color"), gc.DeepEquals, []facet.Value{
		{Range: "Blue", Count: 1, Children: facet.Result{{Name: "Size", Values: []facet.Value{{Range: "L", Count: 1}}}}},
		{Range: "Red", Count: 1, Children: facet.Result{{Name: "Size", Values: []facet.Value{{Range: "L", Count: 1}}}}},
	})
	c.Assert(valuesOf(c, res, "Price"), gc.DeepEquals, []facet.Value{
		{Range: "[0 TO 10]", Count: 1, Children: facet.Result{{Name: "Color", Values: []facet.Value{{Range: "Red", Count: 1}}}}},
		{Range: "[11 TO 20]", Count: 1, Children: facet.Result{{Name: "Color", Values: []facet.Value{{Range: "Blue", Count: 1}}}}},
	})
}

func (s *BleveRunnerTestSuite) TestUnknownIndex(c *gc.C) {
	_, err := s.runner.GetFacets(context.TODO(), "orders", "", "facets/products")
	c.Assert(err, gc.ErrorMatches, ".*index not found.*")
}

func (s *BleveRunnerTestSuite) TestNumericTermsFacet(c *gc.C) {
	idx, err := s.catalog.Create("stock")
	c.Assert(err, gc.IsNil)
	docs := []map[string]interface{}{
		{"Qty": 3.0, "Size": "L"},
		{"Qty": 7.0, "Size": "L"},
		{"Qty": 7.0, "Size": "S"},
	}
	for i, fields := range docs {
		c.Assert(idx.Index(&index.Document{ID: string(rune('a' + i)), Fields: fields}), gc.IsNil)
	}
	c.Assert(s.setups.Upsert(context.TODO(), &setup.Record{
		ID: "facets/stock",
		Setup: &facet.Setup{Facets: []facet.Definition{
			{Name: "Qty", Children: []facet.Definition{{Name: "Size"}}},
		}},
	}), gc.IsNil)

	res, err := s.runner.GetFacets(context.TODO(), "stock", "", "facets/stock")
	c.Assert(err, gc.IsNil)
	c.Assert(valuesOf(c, res, "Qty"), gc.DeepEquals, []facet.Value{
		{Range: "3", Count: 1, Children: facet.Result{{Name: "Size", Values: []facet.Value{{Range: "L", Count: 1}}}}},
		{Range: "7", Count: 2, Children: facet.Result{{Name: "Size", Values: []facet.Value{
			{Range: "L", Count: 1}, {Range: "S", Count: 1},
		}}}},
	})
}

func (s *BleveRunnerTestSuite) TestProhibitedClauseInBaseQuery(c *gc.C) {
	res, err := s.runner.GetFacets(context.TODO(), "products", "Color:Red -Size:L", "facets/products")
	c.Assert(err, gc.IsNil)

	c.Assert(valuesOf(c, res, "Color"), gc.DeepEquals, []facet.Value{
		{Range: "Red", Count: 1, Children: facet.Result{{Name: "Size", Values: []facet.Value{{Range: "S", Count: 1}}}}},
	})
	c.Assert(valuesOf(c, res, "Price"), gc.DeepEquals, []facet.Value{
		{Range: "[0 TO 10]", Count: 1, Children: facet.Result{{Name: "Color", Values: []facet.Value{{Range: "Red", Count: 1}}}}},
	})
}
