package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring Indexer implements index.Indexer.
var _ index.Indexer = (*Indexer)(nil)

// DefaultPITKeepAlive is used when Config.PITKeepAlive is empty.
const DefaultPITKeepAlive = "1m"

/*
keywordMapping maps every dynamically added string field to a keyword field,
so terms aggregations and term queries see facet labels verbatim.
*/
var keywordMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"dynamic_templates": []interface{}{
			map[string]interface{}{
				"strings_as_keywords": map[string]interface{}{
					"match_mapping_type": "string",
					"mapping":            map[string]interface{}{"type": "keyword"},
				},
			},
		},
	},
}

// Config encapsulates the options for connecting to an Elasticsearch cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	// PITKeepAlive bounds how long an idle snapshot stays open on the cluster.
	PITKeepAlive string
}

// Catalog resolves Elasticsearch indexes by name.
type Catalog struct {
	client    *elasticsearch.Client
	keepAlive string
}

// NewCatalog connects a catalog to the cluster described by cfg.
func NewCatalog(cfg Config) (*Catalog, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, xerrors.Errorf("create elasticsearch client: %w", err)
	}
	return NewCatalogWithClient(client, cfg.PITKeepAlive), nil
}

// NewCatalogWithClient returns a catalog that uses an existing client.
func NewCatalogWithClient(client *elasticsearch.Client, keepAlive string) *Catalog {
	if keepAlive == "" {
		keepAlive = DefaultPITKeepAlive
	}
	return &Catalog{client: client, keepAlive: keepAlive}
}

// Index returns a handle for the index called name. Whether the index exists
// is only discovered once it is used.
func (c *Catalog) Index(name string) (index.Indexer, error) {
	if name == "" {
		return nil, xerrors.Errorf("index %q: %w", name, index.ErrIndexNotFound)
	}
	return &Indexer{client: c.client, name: name, keepAlive: c.keepAlive}, nil
}

// Create makes sure the index called name exists, creating it with a keyword
// mapping for string fields when it does not.
func (c *Catalog) Create(name string) (index.Indexer, error) {
	ctx := context.Background()
	res, err := esapi.IndicesExistsRequest{Index: []string{name}}.Do(ctx, c.client)
	if err != nil {
		return nil, xerrors.Errorf("create index %q: %w", name, err)
	}
	closeBody(res)

	if res.StatusCode == http.StatusNotFound {
		body, err := encode(keywordMapping)
		if err != nil {
			return nil, err
		}
		res, err = esapi.IndicesCreateRequest{Index: name, Body: body}.Do(ctx, c.client)
		if err != nil {
			return nil, xerrors.Errorf("create index %q: %w", name, err)
		}
		defer closeBody(res)
		if res.IsError() {
			return nil, xerrors.Errorf("create index %q: %w", name, responseError(res))
		}
	}
	return c.Index(name)
}

// Indexer is an index.Indexer backed by one Elasticsearch index.
type Indexer struct {
	client    *elasticsearch.Client
	name      string
	keepAlive string
}

// Index stores the document fields as the _source of doc.ID. The index is
// refreshed so the document is visible to snapshots acquired afterwards.
func (i *Indexer) Index(doc *index.Document) error {
	if doc.ID == "" {
		return xerrors.Errorf("index: %w", index.ErrMissingID)
	}
	body, err := encode(doc.Fields)
	if err != nil {
		return err
	}

	res, err := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: doc.ID,
		Body:       body,
		Refresh:    "true",
	}.Do(context.Background(), i.client)
	if err != nil {
		return xerrors.Errorf("index: %w", err)
	}
	defer closeBody(res)
	if res.IsError() {
		return xerrors.Errorf("index: %w", responseError(res))
	}
	return nil
}

// FindByID fetches the _source of a document.
func (i *Indexer) FindByID(id string) (*index.Document, error) {
	res, err := esapi.GetRequest{Index: i.name, DocumentID: id}.Do(context.Background(), i.client)
	if err != nil {
		return nil, xerrors.Errorf("find by ID: %w", err)
	}
	defer closeBody(res)
	if res.StatusCode == http.StatusNotFound {
		return nil, xerrors.Errorf("find by ID: %w", index.ErrNotFound)
	}
	if res.IsError() {
		return nil, xerrors.Errorf("find by ID: %w", responseError(res))
	}

	var got struct {
		ID     string                 `json:"_id"`
		Source map[string]interface{} `json:"_source"`
	}
	if err = json.NewDecoder(res.Body).Decode(&got); err != nil {
		return nil, xerrors.Errorf("find by ID: %w", err)
	}
	return &index.Document{ID: got.ID, Fields: got.Source}, nil
}

// AcquireSnapshot opens a point in time on the index.
func (i *Indexer) AcquireSnapshot(ctx context.Context) (index.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := esapi.OpenPointInTimeRequest{
		Index:     []string{i.name},
		KeepAlive: i.keepAlive,
	}.Do(ctx, i.client)
	if err != nil {
		return nil, xerrors.Errorf("acquire snapshot: %w", err)
	}
	defer closeBody(res)
	if res.StatusCode == http.StatusNotFound {
		return nil, xerrors.Errorf("acquire snapshot of %q: %w", i.name, index.ErrIndexNotFound)
	}
	if res.IsError() {
		return nil, xerrors.Errorf("acquire snapshot: %w", responseError(res))
	}

	var pit struct {
		ID string `json:"id"`
	}
	if err = json.NewDecoder(res.Body).Decode(&pit); err != nil {
		return nil, xerrors.Errorf("acquire snapshot: %w", err)
	}
	return &esSnapshot{client: i.client, pitID: pit.ID, keepAlive: i.keepAlive}, nil
}

// Close is a no-op; the client holds no per-index resources.
func (i *Indexer) Close() error { return nil }

func encode(v interface{}) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, xerrors.Errorf("encode request: %w", err)
	}
	return &buf, nil
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}

// responseError turns an error response into an error carrying the reason
// reported by the cluster. Bad requests wrap index.ErrQueryRejected.
func responseError(res *esapi.Response) error {
	var e struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	reason := res.Status()
	if res.Body != nil {
		if data, err := io.ReadAll(res.Body); err == nil && json.Unmarshal(data, &e) == nil && e.Error.Type != "" {
			reason = fmt.Sprintf("%s: %s", e.Error.Type, e.Error.Reason)
		} else if err == nil && len(data) > 0 {
			reason = strings.TrimSpace(string(data))
		}
	}

	if res.StatusCode == http.StatusBadRequest {
		return xerrors.Errorf("%s: %w", reason, index.ErrQueryRejected)
	}
	return xerrors.Errorf("elasticsearch [%d]: %s", res.StatusCode, reason)
}
