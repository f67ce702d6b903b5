package facetquery

import (
	"context"

	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/textindexer/index"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/brandonshearin/facetsearch/facetquery SetupFinder,IndexResolver
//go:generate mockgen -package mocks -destination mocks/index.go github.com/brandonshearin/facetsearch/textindexer/index Indexer,Snapshot,TermIterator

// SetupFinder is implemented by objects that can resolve facet setups by ID.
type SetupFinder interface {
	Find(ctx context.Context, id string) (*setup.Record, error)
}

// IndexResolver is implemented by objects that can look up a text index by name.
type IndexResolver interface {
	Index(name string) (index.Indexer, error)
}
