package facetquery

import (
	"context"
	"time"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Config encapsulates the configuration options for creating a new Runner.
type Config struct {
	// Setups resolves facet setup documents.
	Setups SetupFinder
	// Indexes resolves the text index a request targets.
	Indexes IndexResolver

	MaxTermCandidates int
	Workers           int

	Logger *zap.Logger
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Setups == nil {
		err = multierror.Append(err, xerrors.New("setup finder has not been provided"))
	}
	if cfg.Indexes == nil {
		err = multierror.Append(err, xerrors.New("index resolver has not been provided"))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return err
}

// Runner answers facet requests: it resolves the setup and the index, pins
// a snapshot and runs the Aggregator against it.
type Runner struct {
	setups  SetupFinder
	indexes IndexResolver
	agg     *Aggregator
	logger  *zap.Logger
}

// NewRunner returns a Runner configured by cfg.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("facet runner config validation failed: %w", err)
	}
	return &Runner{
		setups:  cfg.Setups,
		indexes: cfg.Indexes,
		agg: NewAggregator(AggregatorConfig{
			MaxTermCandidates: cfg.MaxTermCandidates,
			Workers:           cfg.Workers,
			Logger:            cfg.Logger,
		}),
		logger: cfg.Logger,
	}, nil
}

/*
GetFacets computes the facets of setup setupID over the documents of index
indexName matching baseQuery. A missing setup fails with
ErrConfigurationNotFound before the index is touched. The snapshot is
released on every path and a failure to release it is reported alongside
any aggregation error.
*/
func (r *Runner) GetFacets(ctx context.Context, indexName, baseQuery, setupID string) (res facet.Result, err error) {
	start := time.Now()
	logger := r.logger.With(
		zap.String("index", indexName),
		zap.String("setup", setupID),
		zap.String("query", baseQuery),
	)
	logger.Debug("computing facets")
	defer func() {
		if err != nil {
			logger.Debug("facet computation failed", zap.Error(err), zap.Duration("took", time.Since(start)))
			return
		}
		logger.Debug("computed facets", zap.Int("facets", len(res)), zap.Duration("took", time.Since(start)))
	}()

	rec, err := r.setups.Find(ctx, setupID)
	if xerrors.Is(err, setup.ErrNotFound) {
		return nil, xerrors.Errorf("setup %q: %w", setupID, ErrConfigurationNotFound)
	} else if err != nil {
		return nil, xerrors.Errorf("setup %q: %w", setupID, err)
	}
	var facets []facet.Definition
	if rec.Setup != nil {
		facets = rec.Setup.Facets
	}

	idx, err := r.indexes.Index(indexName)
	if err != nil {
		return nil, err
	}
	snap, err := idx.AcquireSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := snap.Close(); cErr != nil {
			cErr = xerrors.Errorf("release snapshot: %w", cErr)
			if err == nil {
				err = cErr
			} else {
				err = multierror.Append(err, cErr)
			}
			res = nil
		}
	}()

	return r.agg.ComputeFacets(ctx, baseQuery, facets, snap)
}
