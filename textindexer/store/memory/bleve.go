package memory

import (
	"context"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring InMemoryBleveIndexer implements Indexer.
var _ index.Indexer = (*InMemoryBleveIndexer)(nil)

/*
InMemoryBleveIndexer keeps a bleve index in memory next to a copy of every
indexed document. It backs tests and single-node deployments whose
documents are seeded at startup.
*/
type InMemoryBleveIndexer struct {
	//mu guards docs and numeric, and serialises writes against snapshot acquisition
	mu   sync.RWMutex
	docs map[string]*index.Document
	//numeric lists the fields bleve stores as prefix coded numbers
	numeric fieldSet
	//idx stores a reference to the bleve index
	idx bleve.Index
}

//NewInMemoryBleveIndexer creates a text indexer that uses an in-memory bleve instance for indexing docs
func NewInMemoryBleveIndexer() (*InMemoryBleveIndexer, error) {
	idx, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return nil, xerrors.Errorf("create bleve index: %w", err)
	}

	return &InMemoryBleveIndexer{
		idx:     idx,
		docs:    make(map[string]*index.Document),
		numeric: make(fieldSet),
	}, nil
}

/*
newIndexMapping indexes every string verbatim. Facet labels are
emitted exactly as stored, so "Red" stays "Red" rather than being lowercased
and split by the standard analyzer.
*/
func newIndexMapping() mapping.IndexMapping {
	m := bleve.NewIndexMapping()
	m.DefaultAnalyzer = keyword.Name
	return m
}

// Close the indexer and release any allocated resources.
func (i *InMemoryBleveIndexer) Close() error {
	return i.idx.Close()
}

/*
Index stores a copy of the document and hands its fields to bleve.
*/
func (i *InMemoryBleveIndexer) Index(doc *index.Document) error {
	if doc.ID == "" {
		return xerrors.Errorf("index: %w", index.ErrMissingID)
	}
	dcopy := doc.Clone()

	//acquire write lock when making changes to data structure
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.idx.Index(dcopy.ID, dcopy.Fields); err != nil {
		return xerrors.Errorf("index: %w", err)
	}
	i.docs[dcopy.ID] = dcopy
	i.numeric.addNumeric("", dcopy.Fields)
	return nil
}

// FindByID looks up a document by its ID.
func (i *InMemoryBleveIndexer) FindByID(id string) (*index.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	d, found := i.docs[id]
	if !found {
		return nil, xerrors.Errorf("find by ID: %w", index.ErrNotFound)
	}
	return d.Clone(), nil
}

/*
AcquireSnapshot opens a bleve index reader. The reader sees the index as it
was when it was opened, so every count issued through the snapshot is
consistent even while documents keep being indexed.
*/
func (i *InMemoryBleveIndexer) AcquireSnapshot(ctx context.Context) (index.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	internal, _, err := i.idx.Advanced()
	if err != nil {
		return nil, xerrors.Errorf("acquire snapshot: %w", err)
	}
	reader, err := internal.Reader()
	if err != nil {
		return nil, xerrors.Errorf("acquire snapshot: %w", err)
	}

	return &bleveSnapshot{
		reader:  reader,
		mapping: i.idx.Mapping(),
		numeric: i.numeric.clone(),
	}, nil
}
