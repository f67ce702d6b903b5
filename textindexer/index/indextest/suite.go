package indextest

import (
	"context"

	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

/*
SuiteBase defines a re-usable set of index-related tests that can
be executed against any type that implements index.Indexer (our in memory
bleve index implementation, and our elasticsearch index)
*/
type SuiteBase struct {
	idx index.Indexer
}

/*
SetIndexer configures the test-suite to run all tests against the idx param.
Concrete suites call it from SetUpTest with a fresh, empty index.
*/
func (s *SuiteBase) SetIndexer(idx index.Indexer) {
	s.idx = idx
}

type fakeQuery struct{}

func (fakeQuery) String() string { return "fake" }

//TestIndexDocument verifies the indexing logic for new documents
func (s *SuiteBase) TestIndexDocument(c *gc.C) {
	incompleteDoc := &index.Document{
		Fields: map[string]interface{}{"Color": "Red"},
	}

	err := s.idx.Index(incompleteDoc)
	c.Assert(err, gc.NotNil)
	c.Assert(xerrors.Is(err, index.ErrMissingID), gc.Equals, true)

	err = s.idx.Index(&index.Document{ID: "doc-1", Fields: map[string]interface{}{"Color": "Red"}})
	c.Assert(err, gc.IsNil)
}

//TestFindByID verifies lookups of indexed and unknown documents
func (s *SuiteBase) TestFindByID(c *gc.C) {
	doc := &index.Document{ID: "doc-1", Fields: map[string]interface{}{"Color": "Red", "Size": "L"}}
	c.Assert(s.idx.Index(doc), gc.IsNil)

	got, err := s.idx.FindByID("doc-1")
	c.Assert(err, gc.IsNil)
	c.Assert(got.ID, gc.Equals, "doc-1")
	c.Assert(got.Fields["Color"], gc.Equals, "Red")
	c.Assert(got.Fields["Size"], gc.Equals, "L")

	_, err = s.idx.FindByID("missing")
	c.Assert(xerrors.Is(err, index.ErrNotFound), gc.Equals, true)
}

//TestFieldValues verifies term enumeration order, bounds and unknown fields
func (s *SuiteBase) TestFieldValues(c *gc.C) {
	s.indexColors(c, "Red", "Red", "Blue", "Green")
	snap := s.snapshot(c)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	values, err := index.EnumerateFieldValues(context.TODO(), snap, "Color", 10)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.DeepEquals, []string{"Blue", "Green", "Red"})

	values, err = index.EnumerateFieldValues(context.TODO(), snap, "Color", 2)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.DeepEquals, []string{"Blue", "Green"})

	values, err = index.EnumerateFieldValues(context.TODO(), snap, "Flavour", 10)
	c.Assert(err, gc.IsNil)
	c.Assert(values, gc.HasLen, 0)
}

//TestCountMatches verifies conjunction counts for term, range and parsed queries
func (s *SuiteBase) TestCountMatches(c *gc.C) {
	docs := []map[string]interface{}{
		{"Color": "Red", "Size": "L", "Price": 5.0},
		{"Color": "Red", "Size": "S", "Price": 8.0},
		{"Color": "Blue", "Size": "L", "Price": 15.0},
	}
	for i, fields := range docs {
		c.Assert(s.idx.Index(&index.Document{ID: docID(i), Fields: fields}), gc.IsNil)
	}

	snap := s.snapshot(c)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	all := s.parse(c, snap, "")
	specs := []struct {
		base  index.Query
		other index.Query
		exp   uint64
	}{
		{all, snap.TermQuery("Color", "Red"), 2},
		{all, snap.TermQuery("Color", "Green"), 0},
		{all, s.parse(c, snap, "Price:[0 TO 10]"), 2},
		{all, s.parse(c, snap, "Price:{5 TO 20]"), 2},
		{all, s.parse(c, snap, "Price:[11 TO 20]"), 1},
		{s.parse(c, snap, "Color:Red"), snap.TermQuery("Size", "L"), 1},
		{s.parse(c, snap, "Color:Red OR Color:Blue"), snap.TermQuery("Size", "L"), 2},
		{s.parse(c, snap, "NOT Color:Red"), all, 1},
		{s.parse(c, snap, "Color:Red -Size:L"), all, 1},
		{s.parse(c, snap, "+Color:Red Size:L"), all, 2},
		{s.parse(c, snap, "Color:Blue Size:S -Price:[10 TO 20]"), all, 1},
	}
	for i, spec := range specs {
		count, err := snap.CountMatches(context.TODO(), spec.base, spec.other)
		c.Assert(err, gc.IsNil, gc.Commentf("case %d", i))
		c.Assert(count, gc.Equals, spec.exp, gc.Commentf("case %d: %s AND %s", i, spec.base, spec.other))
	}
}

//TestSnapshotIsolation verifies that a snapshot does not observe later writes
func (s *SuiteBase) TestSnapshotIsolation(c *gc.C) {
	s.indexColors(c, "Red")
	snap := s.snapshot(c)

	c.Assert(s.idx.Index(&index.Document{ID: "late", Fields: map[string]interface{}{"Color": "Red"}}), gc.IsNil)

	count, err := snap.CountMatches(context.TODO(), s.parse(c, snap, ""), snap.TermQuery("Color", "Red"))
	c.Assert(err, gc.IsNil)
	c.Assert(count, gc.Equals, uint64(1))
	c.Assert(snap.Close(), gc.IsNil)

	fresh := s.snapshot(c)
	defer func() { c.Assert(fresh.Close(), gc.IsNil) }()
	count, err = fresh.CountMatches(context.TODO(), s.parse(c, fresh, ""), fresh.TermQuery("Color", "Red"))
	c.Assert(err, gc.IsNil)
	c.Assert(count, gc.Equals, uint64(2))
}

//TestParseErrors verifies that malformed query text surfaces a syntax error
func (s *SuiteBase) TestParseErrors(c *gc.C) {
	snap := s.snapshot(c)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	_, err := snap.Parse("Color:(Red")
	var synErr *lucene.SyntaxError
	c.Assert(xerrors.As(err, &synErr), gc.Equals, true)
}

//TestForeignQuery verifies that queries built elsewhere are rejected
func (s *SuiteBase) TestForeignQuery(c *gc.C) {
	snap := s.snapshot(c)
	defer func() { c.Assert(snap.Close(), gc.IsNil) }()

	_, err := snap.CountMatches(context.TODO(), fakeQuery{}, snap.TermQuery("Color", "Red"))
	c.Assert(xerrors.Is(err, index.ErrForeignQuery), gc.Equals, true)
}

func (s *SuiteBase) indexColors(c *gc.C, colors ...string) {
	for i, color := range colors {
		doc := &index.Document{ID: docID(i), Fields: map[string]interface{}{"Color": color}}
		c.Assert(s.idx.Index(doc), gc.IsNil)
	}
}

func (s *SuiteBase) snapshot(c *gc.C) index.Snapshot {
	snap, err := s.idx.AcquireSnapshot(context.TODO())
	c.Assert(err, gc.IsNil)
	return snap
}

func (s *SuiteBase) parse(c *gc.C, snap index.Snapshot, text string) index.Query {
	q, err := snap.Parse(text)
	c.Assert(err, gc.IsNil, gc.Commentf("query %q", text))
	return q
}

func docID(i int) string {
	return "doc-" + string(rune('a'+i))
}
