package facetquery

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
)

// fakeSnapshot evaluates parsed queries against a fixed list of documents.
type fakeSnapshot struct {
	docs []map[string]interface{}

	mu       sync.Mutex
	parsed   []string
	calls    int
	closed   bool
	countErr error
	closeErr error
}

type fakeQuery struct {
	node lucene.Node
	text string
}

func (q *fakeQuery) String() string { return q.text }

func (s *fakeSnapshot) record(parsed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if parsed != "" {
		s.parsed = append(s.parsed, parsed)
	}
}

func (s *fakeSnapshot) adapterCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeSnapshot) parsedTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.parsed...)
}

func (s *fakeSnapshot) Parse(text string) (index.Query, error) {
	s.record(text)
	node, err := lucene.Parse(text)
	if err != nil {
		return nil, err
	}
	return &fakeQuery{node: node, text: text}, nil
}

func (s *fakeSnapshot) TermQuery(field, value string) index.Query {
	return &fakeQuery{node: &lucene.Term{Field: field, Value: value}, text: field + ":" + value}
}

func (s *fakeSnapshot) FieldValues(_ context.Context, field string, limit int) (index.TermIterator, error) {
	s.record("")
	seen := make(map[string]bool)
	var values []string
	for _, doc := range s.docs {
		v, ok := doc[field]
		if !ok {
			continue
		}
		if str := stringify(v); !seen[str] {
			seen[str] = true
			values = append(values, str)
		}
	}
	sort.Strings(values)
	if len(values) > limit {
		values = values[:limit]
	}
	return &fakeIterator{values: values}, nil
}

func (s *fakeSnapshot) CountMatches(_ context.Context, a, b index.Query) (uint64, error) {
	s.record("")
	if s.countErr != nil {
		return 0, s.countErr
	}
	qa, qb := a.(*fakeQuery), b.(*fakeQuery)
	var n uint64
	for _, doc := range s.docs {
		if matches(qa.node, doc) && matches(qb.node, doc) {
			n++
		}
	}
	return n, nil
}

func (s *fakeSnapshot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

func (s *fakeSnapshot) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeIterator struct {
	values []string
	pos    int
}

func (it *fakeIterator) Next() bool {
	if it.pos >= len(it.values) {
		return false
	}
	it.pos++
	return true
}

func (it *fakeIterator) Term() string { return it.values[it.pos-1] }
func (it *fakeIterator) Error() error { return nil }
func (it *fakeIterator) Close() error { return nil }

func matches(n lucene.Node, doc map[string]interface{}) bool {
	switch n := n.(type) {
	case lucene.MatchAll:
		return true
	case *lucene.Term:
		if n.Field == "" {
			for _, v := range doc {
				if stringify(v) == n.Value {
					return true
				}
			}
			return false
		}
		v, ok := doc[n.Field]
		return ok && stringify(v) == n.Value
	case *lucene.Range:
		v, ok := doc[n.Field]
		return ok && inRange(v, n)
	case *lucene.And:
		for _, c := range n.Clauses {
			if !matches(c, doc) {
				return false
			}
		}
		return true
	case *lucene.Or:
		for _, c := range n.Clauses {
			if matches(c, doc) {
				return true
			}
		}
		return false
	case *lucene.Not:
		return !matches(n.Clause, doc)
	case *lucene.Bool:
		for _, c := range n.MustNot {
			if matches(c, doc) {
				return false
			}
		}
		for _, c := range n.Must {
			if !matches(c, doc) {
				return false
			}
		}
		if len(n.Must) > 0 || len(n.Should) == 0 {
			return true
		}
		for _, c := range n.Should {
			if matches(c, doc) {
				return true
			}
		}
		return false
	}
	return false
}

func inRange(v interface{}, r *lucene.Range) bool {
	cmp := func(bound string) int {
		if f, ok := v.(float64); ok {
			if b, err := strconv.ParseFloat(bound, 64); err == nil {
				switch {
				case f < b:
					return -1
				case f > b:
					return 1
				}
				return 0
			}
		}
		return strings.Compare(stringify(v), bound)
	}
	if r.Min != "" {
		if c := cmp(r.Min); c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != "" {
		if c := cmp(r.Max); c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	return true
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
