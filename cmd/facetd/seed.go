package main

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/brandonshearin/facetsearch/config"
	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type seedDocument struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

/*
seed loads the optional seed files: a JSON object mapping index names to
document lists, and a JSON object mapping setup IDs to facet setups.
*/
func seed(ctx context.Context, cfg config.SeedConfig, indexes catalog, setups setup.Store, logger *zap.Logger) error {
	if cfg.Documents != "" {
		var docs map[string][]seedDocument
		if err := readJSON(cfg.Documents, &docs); err != nil {
			return err
		}
		names := make([]string, 0, len(docs))
		for name := range docs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			idx, err := indexes.Create(name)
			if err != nil {
				return xerrors.Errorf("seed index %q: %w", name, err)
			}
			for _, d := range docs[name] {
				if err = idx.Index(&index.Document{ID: d.ID, Fields: d.Fields}); err != nil {
					return xerrors.Errorf("seed index %q document %q: %w", name, d.ID, err)
				}
			}
			logger.Info("seeded index", zap.String("index", name), zap.Int("documents", len(docs[name])))
		}
	}

	if cfg.Setups != "" {
		var setupDocs map[string]*facet.Setup
		if err := readJSON(cfg.Setups, &setupDocs); err != nil {
			return err
		}
		ids := make([]string, 0, len(setupDocs))
		for id := range setupDocs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if err := setups.Upsert(ctx, &setup.Record{ID: id, Setup: setupDocs[id]}); err != nil {
				return xerrors.Errorf("seed setup %q: %w", id, err)
			}
			logger.Info("seeded facet setup", zap.String("setup", id))
		}
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return xerrors.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err = json.NewDecoder(f).Decode(v); err != nil {
		return xerrors.Errorf("decode seed file %q: %w", path, err)
	}
	return nil
}
