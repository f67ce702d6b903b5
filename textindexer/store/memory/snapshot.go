package memory

import (
	"context"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve"
	bleveindex "github.com/blevesearch/bleve/index"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search"
	"github.com/blevesearch/bleve/search/collector"
	"github.com/blevesearch/bleve/search/query"
	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"golang.org/x/xerrors"
)

// bleveQuery is the index.Query produced by bleve snapshots.
type bleveQuery struct {
	q    query.Query
	text string
}

func (q *bleveQuery) String() string { return q.text }

// scoreOrder is the collector sort order. Counting ignores it but the
// collector requires one.
var scoreOrder = search.SortOrder{&search.SortScore{Desc: true}}

type bleveSnapshot struct {
	reader  bleveindex.IndexReader
	mapping mapping.IndexMapping
	numeric fieldSet

	closed    uint32
	closeOnce sync.Once
	closeErr  error
}

func (s *bleveSnapshot) checkOpen(ctx context.Context) error {
	if atomic.LoadUint32(&s.closed) == 1 {
		return index.ErrSnapshotClosed
	}
	return ctx.Err()
}

// Parse compiles Lucene-style query text into a bleve query.
func (s *bleveSnapshot) Parse(text string) (index.Query, error) {
	node, err := lucene.Parse(text)
	if err != nil {
		return nil, err
	}
	q, err := compile(node)
	if err != nil {
		return nil, xerrors.Errorf("parse %q: %w", text, err)
	}
	return &bleveQuery{q: q, text: text}, nil
}

/*
TermQuery matches the exact indexed term value in field. Values that read as
numbers also match numeric fields holding that number, which is how numeric
values enumerated by FieldValues are counted.
*/
func (s *bleveSnapshot) TermQuery(field, value string) index.Query {
	tq := bleve.NewTermQuery(value)
	tq.SetField(field)
	text := field + ":" + lucene.Escape(value)

	num, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return &bleveQuery{q: tq, text: text}
	}
	inclusive := true
	nq := bleve.NewNumericRangeInclusiveQuery(&num, &num, &inclusive, &inclusive)
	nq.SetField(field)
	return &bleveQuery{q: bleve.NewDisjunctionQuery(tq, nq), text: text}
}

// FieldValues walks the term dictionary of field, decoding numeric terms.
func (s *bleveSnapshot) FieldValues(ctx context.Context, field string, limit int) (index.TermIterator, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	dict, err := s.reader.FieldDict(field)
	if err != nil {
		return nil, xerrors.Errorf("field values %q: %w", field, err)
	}
	return &termIterator{ctx: ctx, dict: dict, remaining: limit, numeric: s.numeric.has(field)}, nil
}

/*
CountMatches runs the conjunction of a and b against the pinned reader. The
collector keeps no hits (size 0) so only the total is computed.
*/
func (s *bleveSnapshot) CountMatches(ctx context.Context, a, b index.Query) (uint64, error) {
	if err := s.checkOpen(ctx); err != nil {
		return 0, err
	}
	qa, err := unwrap(a)
	if err != nil {
		return 0, err
	}
	qb, err := unwrap(b)
	if err != nil {
		return 0, err
	}

	conj := bleve.NewConjunctionQuery(qa, qb)
	searcher, err := conj.Searcher(s.reader, s.mapping, search.SearcherOptions{})
	if err != nil {
		return 0, xerrors.Errorf("count matches: %w", err)
	}
	defer func() { _ = searcher.Close() }()

	coll := collector.NewTopNCollector(0, 0, scoreOrder)
	if err = coll.Collect(ctx, searcher, s.reader); err != nil {
		return 0, xerrors.Errorf("count matches: %w", err)
	}
	return coll.Total(), nil
}

// Close releases the underlying index reader. It is safe to call more than once.
func (s *bleveSnapshot) Close() error {
	s.closeOnce.Do(func() {
		atomic.StoreUint32(&s.closed, 1)
		s.closeErr = s.reader.Close()
	})
	return s.closeErr
}

func unwrap(q index.Query) (query.Query, error) {
	bq, ok := q.(*bleveQuery)
	if !ok {
		return nil, xerrors.Errorf("count matches %T: %w", q, index.ErrForeignQuery)
	}
	return bq.q, nil
}
