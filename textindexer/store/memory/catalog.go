package memory

import (
	"sort"
	"sync"

	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Catalog holds named in-memory bleve indexes.
type Catalog struct {
	mu      sync.RWMutex
	indexes map[string]*InMemoryBleveIndexer
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{indexes: make(map[string]*InMemoryBleveIndexer)}
}

// Create returns the index called name, creating it when it does not exist yet.
func (c *Catalog) Create(name string) (index.Indexer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, exists := c.indexes[name]; exists {
		return idx, nil
	}
	idx, err := NewInMemoryBleveIndexer()
	if err != nil {
		return nil, xerrors.Errorf("create index %q: %w", name, err)
	}
	c.indexes[name] = idx
	return idx, nil
}

// Index returns the index called name.
func (c *Catalog) Index(name string) (index.Indexer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, exists := c.indexes[name]
	if !exists {
		return nil, xerrors.Errorf("index %q: %w", name, index.ErrIndexNotFound)
	}
	return idx, nil
}

// Names lists the catalog's indexes in lexicographic order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.indexes))
	for name := range c.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every index in the catalog.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for name, idx := range c.indexes {
		if cErr := idx.Close(); cErr != nil {
			err = multierror.Append(err, xerrors.Errorf("close index %q: %w", name, cErr))
		}
		delete(c.indexes, name)
	}
	return err
}
