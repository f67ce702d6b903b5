package es

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"golang.org/x/xerrors"
)

// esQuery is the index.Query produced by Elasticsearch snapshots: a query DSL clause.
type esQuery struct {
	clause map[string]interface{}
	text   string
}

func (q *esQuery) String() string { return q.text }

type esSnapshot struct {
	client    *elasticsearch.Client
	pitID     string
	keepAlive string

	closed    uint32
	closeOnce sync.Once
	closeErr  error
}

/*
Parse validates the text locally, so malformed queries fail before any
request is sent, and hands it to the cluster as a query_string query, which
speaks the same syntax.
*/
func (s *esSnapshot) Parse(text string) (index.Query, error) {
	node, err := lucene.Parse(text)
	if err != nil {
		return nil, err
	}
	if _, matchAll := node.(lucene.MatchAll); matchAll && strings.TrimSpace(text) == "" {
		return &esQuery{clause: map[string]interface{}{"match_all": map[string]interface{}{}}, text: text}, nil
	}
	return &esQuery{
		clause: map[string]interface{}{
			"query_string": map[string]interface{}{"query": text},
		},
		text: text,
	}, nil
}

// TermQuery matches the exact keyword value in field.
func (s *esSnapshot) TermQuery(field, value string) index.Query {
	return &esQuery{
		clause: map[string]interface{}{
			"term": map[string]interface{}{
				field: map[string]interface{}{"value": value},
			},
		},
		text: field + ":" + lucene.Escape(value),
	}
}

// FieldValues runs a terms aggregation over the whole point in time.
func (s *esSnapshot) FieldValues(ctx context.Context, field string, limit int) (index.TermIterator, error) {
	if limit <= 0 {
		return &sliceIterator{}, nil
	}
	body := map[string]interface{}{
		"size": 0,
		"pit":  s.pit(),
		"aggs": map[string]interface{}{
			"values": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": field,
					"size":  limit,
					"order": map[string]interface{}{"_key": "asc"},
				},
			},
		},
	}

	var resp struct {
		Aggregations struct {
			Values struct {
				Buckets []struct {
					Key         interface{} `json:"key"`
					KeyAsString string      `json:"key_as_string"`
				} `json:"buckets"`
			} `json:"values"`
		} `json:"aggregations"`
	}
	if err := s.search(ctx, body, &resp); err != nil {
		return nil, xerrors.Errorf("field values %q: %w", field, err)
	}

	terms := make([]string, 0, len(resp.Aggregations.Values.Buckets))
	for _, b := range resp.Aggregations.Values.Buckets {
		if b.KeyAsString != "" {
			terms = append(terms, b.KeyAsString)
			continue
		}
		terms = append(terms, fmt.Sprint(b.Key))
	}
	return &sliceIterator{terms: terms}, nil
}

// CountMatches runs a size 0 search for the conjunction of a and b.
func (s *esSnapshot) CountMatches(ctx context.Context, a, b index.Query) (uint64, error) {
	qa, err := unwrap(a)
	if err != nil {
		return 0, err
	}
	qb, err := unwrap(b)
	if err != nil {
		return 0, err
	}

	body := map[string]interface{}{
		"size":             0,
		"track_total_hits": true,
		"pit":              s.pit(),
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{qa.clause, qb.clause},
			},
		},
	}

	var resp struct {
		Hits struct {
			Total struct {
				Value uint64 `json:"value"`
			} `json:"total"`
		} `json:"hits"`
	}
	if err = s.search(ctx, body, &resp); err != nil {
		return 0, xerrors.Errorf("count matches: %w", err)
	}
	return resp.Hits.Total.Value, nil
}

// Close releases the point in time. It is safe to call more than once.
func (s *esSnapshot) Close() error {
	s.closeOnce.Do(func() {
		atomic.StoreUint32(&s.closed, 1)
		s.closeErr = s.closePIT()
	})
	return s.closeErr
}

func (s *esSnapshot) closePIT() error {
	body, err := encode(map[string]interface{}{"id": s.pitID})
	if err != nil {
		return err
	}
	res, err := esapi.ClosePointInTimeRequest{Body: body}.Do(context.Background(), s.client)
	if err != nil {
		return xerrors.Errorf("release snapshot: %w", err)
	}
	defer closeBody(res)
	if res.IsError() {
		return xerrors.Errorf("release snapshot: %w", responseError(res))
	}
	return nil
}

func (s *esSnapshot) pit() map[string]interface{} {
	return map[string]interface{}{"id": s.pitID, "keep_alive": s.keepAlive}
}

func (s *esSnapshot) search(ctx context.Context, body map[string]interface{}, out interface{}) error {
	if atomic.LoadUint32(&s.closed) == 1 {
		return index.ErrSnapshotClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	reqBody, err := encode(body)
	if err != nil {
		return err
	}

	res, err := esapi.SearchRequest{Body: reqBody}.Do(ctx, s.client)
	if err != nil {
		return err
	}
	defer closeBody(res)
	if res.IsError() {
		return responseError(res)
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return xerrors.Errorf("decode search response: %w", err)
	}
	return nil
}

func unwrap(q index.Query) (*esQuery, error) {
	eq, ok := q.(*esQuery)
	if !ok {
		return nil, xerrors.Errorf("count matches %T: %w", q, index.ErrForeignQuery)
	}
	return eq, nil
}

// sliceIterator walks terms already fetched from the cluster.
type sliceIterator struct {
	terms []string
	pos   int
}

func (it *sliceIterator) Next() bool {
	if it.pos >= len(it.terms) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Term() string { return it.terms[it.pos-1] }

func (it *sliceIterator) Error() error { return nil }

func (it *sliceIterator) Close() error { return nil }
