package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandonshearin/facetsearch/api/rest"
	"github.com/brandonshearin/facetsearch/config"
	"github.com/brandonshearin/facetsearch/facetquery"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	setupmemory "github.com/brandonshearin/facetsearch/facetsetup/store/memory"
	setupmongo "github.com/brandonshearin/facetsearch/facetsetup/store/mongo"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/brandonshearin/facetsearch/textindexer/store/es"
	indexmemory "github.com/brandonshearin/facetsearch/textindexer/store/memory"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const shutdownTimeout = 10 * time.Second

// catalog is implemented by both text index backends.
type catalog interface {
	Index(name string) (index.Indexer, error)
	Create(name string) (index.Indexer, error)
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML configuration file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "facetd: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "facetd: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("facetd stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("facetd stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	indexes, closeIndexes, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	defer closeIndexes()

	setups, closeSetups, err := newSetupStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSetups()

	if err = seed(ctx, cfg.Seed, indexes, setups, logger); err != nil {
		return err
	}

	runner, err := facetquery.NewRunner(facetquery.Config{
		Setups:            setups,
		Indexes:           indexes,
		MaxTermCandidates: cfg.Facets.MaxTermCandidates,
		Workers:           cfg.Facets.Workers,
		Logger:            logger.Named("facets"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: rest.NewRouter(rest.Config{
			Facets:  runner,
			Setups:  setups,
			Indexes: indexes,
			Logger:  logger.Named("http"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("index_backend", cfg.Index.Backend),
			zap.String("setups_backend", cfg.Setups.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if xerrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, xerrors.Errorf("log level: %w", err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

func newCatalog(cfg *config.Config) (catalog, func(), error) {
	switch cfg.Index.Backend {
	case config.BackendElasticsearch:
		cat, err := es.NewCatalog(es.Config{
			Addresses:    cfg.Elasticsearch.Addresses,
			Username:     cfg.Elasticsearch.Username,
			Password:     cfg.Elasticsearch.Password,
			PITKeepAlive: cfg.Elasticsearch.PITKeepAlive,
		})
		if err != nil {
			return nil, nil, err
		}
		return cat, func() {}, nil
	default:
		cat := indexmemory.NewCatalog()
		return cat, func() { _ = cat.Close() }, nil
	}
}

func newSetupStore(ctx context.Context, cfg *config.Config) (setup.Store, func(), error) {
	switch cfg.Setups.Backend {
	case config.BackendMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		store, err := setupmongo.NewMongoSetupStore(connectCtx, setupmongo.Config{
			URI:        cfg.MongoDB.URI,
			Database:   cfg.MongoDB.Database,
			Collection: cfg.MongoDB.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = store.Close(closeCtx)
		}, nil
	default:
		return setupmemory.NewInMemorySetupStore(), func() {}, nil
	}
}
