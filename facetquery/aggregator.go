package facetquery

import (
	"context"
	"strings"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// DefaultMaxTermCandidates bounds how many distinct values a terms facet
// considers when AggregatorConfig.MaxTermCandidates is not set.
const DefaultMaxTermCandidates = 1024

// AggregatorConfig encapsulates the options for creating an Aggregator.
type AggregatorConfig struct {
	/*
		MaxTermCandidates is the number of distinct field values enumerated
		for every terms facet. Values are enumerated over the whole snapshot,
		so a field with more distinct values than this may lose non-zero
		values that sort after the bound.
	*/
	MaxTermCandidates int

	/*
		Workers is the number of counts issued concurrently for the values
		of one facet. Values of 1 or less count strictly one at a time.
	*/
	Workers int

	Logger *zap.Logger
}

func (cfg *AggregatorConfig) setDefaults() {
	if cfg.MaxTermCandidates <= 0 {
		cfg.MaxTermCandidates = DefaultMaxTermCandidates
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

/*
Aggregator computes nested facet results against a single index snapshot.
An Aggregator holds no per-call state and is safe for concurrent use.
*/
type Aggregator struct {
	cfg AggregatorConfig
}

// NewAggregator returns an Aggregator configured by cfg.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	cfg.setDefaults()
	return &Aggregator{cfg: cfg}
}

/*
ComputeFacets aggregates facets, in declaration order, over the documents of
snap matching baseQuery. Values with a zero count are omitted. For every
kept value of a facet with children, the children are computed over the
documents that also match field:value.

Any failure aborts the whole computation and no partial result is returned.
*/
func (a *Aggregator) ComputeFacets(ctx context.Context, baseQuery string, facets []facet.Definition, snap index.Snapshot) (facet.Result, error) {
	res, err := a.compute(ctx, baseQuery, facets, snap)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Aggregator) compute(ctx context.Context, baseQuery string, facets []facet.Definition, snap index.Snapshot) (facet.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := snap.Parse(baseQuery)
	if err != nil {
		return nil, xerrors.Errorf("parse base query %q: %w", baseQuery, err)
	}

	res := make(facet.Result, 0, len(facets))
	for _, f := range facets {
		var values []facet.Value
		switch f.Mode {
		case facet.ModeTerms:
			values, err = a.termValues(ctx, snap, base, f)
		case facet.ModeRange:
			values, err = a.rangeValues(ctx, snap, base, f)
		default:
			err = &facet.UnsupportedModeError{Mode: f.Mode}
		}
		if err != nil {
			return nil, xerrors.Errorf("facet %q: %w", f.Name, err)
		}

		if len(f.Children) != 0 {
			for i := range values {
				narrowed := narrow(baseQuery, f, values[i].Range)
				if values[i].Children, err = a.compute(ctx, narrowed, f.Children, snap); err != nil {
					return nil, xerrors.Errorf("facet %q value %q: %w", f.Name, values[i].Range, err)
				}
			}
		}

		a.cfg.Logger.Debug("computed facet",
			zap.String("facet", f.Name),
			zap.Stringer("mode", f.Mode),
			zap.String("query", baseQuery),
			zap.Int("values", len(values)),
		)
		res.Set(f.Name, values)
	}
	return res, nil
}

// termValues counts every enumerated value of f.Name.
func (a *Aggregator) termValues(ctx context.Context, snap index.Snapshot, base index.Query, f facet.Definition) ([]facet.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	terms, err := index.EnumerateFieldValues(ctx, snap, f.Name, a.cfg.MaxTermCandidates)
	if err != nil {
		return nil, err
	}

	queries := make([]index.Query, len(terms))
	for i, t := range terms {
		queries[i] = snap.TermQuery(f.Name, t)
	}
	return a.count(ctx, snap, base, terms, queries)
}

// rangeValues counts every configured range of f.
func (a *Aggregator) rangeValues(ctx context.Context, snap index.Snapshot, base index.Query, f facet.Definition) ([]facet.Value, error) {
	queries := make([]index.Query, len(f.Ranges))
	for i, r := range f.Ranges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := snap.Parse(f.Name + ":" + r)
		if err != nil {
			return nil, xerrors.Errorf("range %q: %w", r, err)
		}
		queries[i] = q
	}
	return a.count(ctx, snap, base, f.Ranges, queries)
}

/*
count pairs base with each query and keeps the labels whose conjunction
matches at least one document, in input order.
*/
func (a *Aggregator) count(ctx context.Context, snap index.Snapshot, base index.Query, labels []string, queries []index.Query) ([]facet.Value, error) {
	counts := make([]uint64, len(queries))
	if a.cfg.Workers <= 1 || len(queries) <= 1 {
		for i, q := range queries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			n, err := snap.CountMatches(ctx, base, q)
			if err != nil {
				return nil, err
			}
			counts[i] = n
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.cfg.Workers)
		for i, q := range queries {
			i, q := i, q
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				n, err := snap.CountMatches(gctx, base, q)
				if err != nil {
					return err
				}
				counts[i] = n
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var values []facet.Value
	for i, n := range counts {
		if n == 0 {
			continue
		}
		values = append(values, facet.Value{Range: labels[i], Count: n})
	}
	return values, nil
}

/*
narrow restricts baseQuery to the documents whose field f.Name holds label.
Range labels are query syntax already and are spliced as they are; term
labels are escaped so they read back as a single term.

The result is not the plain concatenation base + " AND " + field:label: the
base query is parenthesised so a top level OR in it cannot swallow the
clause, and an empty base query narrows to the clause alone.
*/
func narrow(baseQuery string, f facet.Definition, label string) string {
	if f.Mode == facet.ModeTerms {
		label = lucene.Escape(label)
	}
	clause := f.Name + ":" + label
	if strings.TrimSpace(baseQuery) == "" {
		return clause
	}
	return "(" + baseQuery + ") AND " + clause
}
