package memory

import (
	"math"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"
	"github.com/brandonshearin/facetsearch/lucene"
	"golang.org/x/xerrors"
)

// compile translates a parsed query into the equivalent bleve query.
func compile(n lucene.Node) (query.Query, error) {
	switch n := n.(type) {
	case lucene.MatchAll:
		return bleve.NewMatchAllQuery(), nil
	case *lucene.Term:
		return compileTerm(n), nil
	case *lucene.Range:
		return compileRange(n), nil
	case *lucene.And:
		clauses, err := compileAll(n.Clauses)
		if err != nil {
			return nil, err
		}
		return bleve.NewConjunctionQuery(clauses...), nil
	case *lucene.Or:
		clauses, err := compileAll(n.Clauses)
		if err != nil {
			return nil, err
		}
		return bleve.NewDisjunctionQuery(clauses...), nil
	case *lucene.Not:
		clause, err := compile(n.Clause)
		if err != nil {
			return nil, err
		}
		// bleve cannot evaluate a bare negation, it needs a positive clause
		// to subtract from.
		bq := bleve.NewBooleanQuery()
		bq.AddMust(bleve.NewMatchAllQuery())
		bq.AddMustNot(clause)
		return bq, nil
	case *lucene.Bool:
		return compileBool(n)
	default:
		return nil, xerrors.Errorf("unsupported query node %T", n)
	}
}

/*
compileBool keeps optional clauses out of the match set when required clauses
exist. Without required clauses the optional ones are grouped into a single
required disjunction, and a list of prohibited clauses alone subtracts from
every document.
*/
func compileBool(b *lucene.Bool) (query.Query, error) {
	must, err := compileAll(b.Must)
	if err != nil {
		return nil, err
	}
	should, err := compileAll(b.Should)
	if err != nil {
		return nil, err
	}
	mustNot, err := compileAll(b.MustNot)
	if err != nil {
		return nil, err
	}

	bq := bleve.NewBooleanQuery()
	switch {
	case len(must) > 0:
		bq.AddMust(must...)
		if len(should) > 0 {
			bq.AddShould(should...)
		}
	case len(should) > 0:
		bq.AddMust(bleve.NewDisjunctionQuery(should...))
	default:
		bq.AddMust(bleve.NewMatchAllQuery())
	}
	if len(mustNot) > 0 {
		bq.AddMustNot(mustNot...)
	}
	return bq, nil
}

func compileAll(nodes []lucene.Node) ([]query.Query, error) {
	out := make([]query.Query, len(nodes))
	for i, n := range nodes {
		q, err := compile(n)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

type fieldQuery interface {
	query.Query
	SetField(string)
}

func withField(q fieldQuery, field string) query.Query {
	if field != "" {
		q.SetField(field)
	}
	return q
}

/*
compileTerm maps a term onto a match query. Field-qualified plain values that
look like numbers or booleans also match numeric and boolean fields, since the
query text alone does not tell which kind of field is being addressed.
*/
func compileTerm(t *lucene.Term) query.Query {
	switch {
	case t.Phrase:
		return withField(bleve.NewMatchPhraseQuery(t.Value), t.Field)
	case t.Wildcard:
		if prefix := strings.TrimSuffix(t.Value, "*"); !strings.ContainsAny(prefix, "*?") {
			return withField(bleve.NewPrefixQuery(prefix), t.Field)
		}
		return withField(bleve.NewWildcardQuery(t.Value), t.Field)
	}

	match := withField(bleve.NewMatchQuery(t.Value), t.Field)
	if t.Field == "" {
		return match
	}

	if num, err := strconv.ParseFloat(t.Value, 64); err == nil && !math.IsNaN(num) && !math.IsInf(num, 0) {
		inclusive := true
		numeric := bleve.NewNumericRangeInclusiveQuery(&num, &num, &inclusive, &inclusive)
		return bleve.NewDisjunctionQuery(match, withField(numeric, t.Field))
	}
	if t.Value == "true" || t.Value == "false" {
		return bleve.NewDisjunctionQuery(match, withField(bleve.NewBoolFieldQuery(t.Value == "true"), t.Field))
	}
	return match
}

/*
compileRange builds a numeric range when every given bound is a number and
a lexicographic term range otherwise. A range open on both ends becomes a term
range, which matches any document holding the field.
*/
func compileRange(r *lucene.Range) query.Query {
	minIncl, maxIncl := r.MinInclusive, r.MaxInclusive

	minNum, minIsNum := parseNumericBound(r.Min)
	maxNum, maxIsNum := parseNumericBound(r.Max)
	if minIsNum && maxIsNum && (minNum != nil || maxNum != nil) {
		return withField(bleve.NewNumericRangeInclusiveQuery(minNum, maxNum, &minIncl, &maxIncl), r.Field)
	}
	return withField(bleve.NewTermRangeInclusiveQuery(r.Min, r.Max, &minIncl, &maxIncl), r.Field)
}

// parseNumericBound reports whether v is an open bound or a number.
func parseNumericBound(v string) (*float64, bool) {
	if v == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
