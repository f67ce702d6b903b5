package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// FacetService answers facet requests.
type FacetService interface {
	GetFacets(ctx context.Context, indexName, baseQuery, setupID string) (facet.Result, error)
}

// IndexCatalog creates or opens text indexes by name.
type IndexCatalog interface {
	Create(name string) (index.Indexer, error)
}

// Config encapsulates the collaborators of the REST API.
type Config struct {
	Facets  FacetService
	Setups  setup.Store
	Indexes IndexCatalog
	Logger  *zap.Logger
}

type api struct {
	facets  FacetService
	setups  setup.Store
	indexes IndexCatalog
	logger  *zap.Logger
}

// NewRouter returns a router serving the facet, document and setup endpoints.
func NewRouter(cfg Config) *mux.Router {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	a := &api{facets: cfg.Facets, setups: cfg.Setups, indexes: cfg.Indexes, logger: cfg.Logger}

	r := mux.NewRouter()
	r.Use(a.logRequests)

	r.HandleFunc("/indexes/{index}/facets", a.getFacets).Methods(http.MethodGet)
	r.HandleFunc("/indexes/{index}/documents", a.postDocuments).Methods(http.MethodPost)

	r.HandleFunc("/setups", a.postSetup).Methods(http.MethodPost)
	// setup IDs look like "facets/products" so the ID swallows the rest of the path
	r.HandleFunc("/setups/{id:.+}", a.putSetup).Methods(http.MethodPut)
	r.HandleFunc("/setups/{id:.+}", a.getSetup).Methods(http.MethodGet)
	r.HandleFunc("/setups/{id:.+}", a.deleteSetup).Methods(http.MethodDelete)

	return r
}

// setupResponse is the wire form of a stored setup.
type setupResponse struct {
	ID        string             `json:"id"`
	Facets    []facet.Definition `json:"facets"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type documentRequest struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

func (a *api) getFacets(w http.ResponseWriter, r *http.Request) {
	indexName := mux.Vars(r)["index"]
	setupID := r.URL.Query().Get("setup")
	if setupID == "" {
		a.writeError(w, r, badRequest("missing setup query parameter"))
		return
	}

	res, err := a.facets.GetFacets(r.Context(), indexName, r.URL.Query().Get("query"), setupID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *api) postDocuments(w http.ResponseWriter, r *http.Request) {
	var docs []documentRequest
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		a.writeError(w, r, malformedBody(err))
		return
	}

	//reject the whole batch before anything is indexed
	for i, d := range docs {
		if d.ID == "" {
			a.writeError(w, r, xerrors.Errorf("document %d: %w", i, index.ErrMissingID))
			return
		}
	}

	idx, err := a.indexes.Create(mux.Vars(r)["index"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	for _, d := range docs {
		if err = idx.Index(&index.Document{ID: d.ID, Fields: d.Fields}); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) postSetup(w http.ResponseWriter, r *http.Request) {
	fs, err := facet.DecodeSetup(r.Body)
	if err != nil {
		a.writeError(w, r, malformedBody(err))
		return
	}

	rec := &setup.Record{Setup: fs}
	if err = a.setups.Upsert(r.Context(), rec); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/setups/"+rec.ID)
	a.writeJSON(w, http.StatusCreated, toSetupResponse(rec))
}

func (a *api) putSetup(w http.ResponseWriter, r *http.Request) {
	fs, err := facet.DecodeSetup(r.Body)
	if err != nil {
		a.writeError(w, r, malformedBody(err))
		return
	}

	rec := &setup.Record{ID: mux.Vars(r)["id"], Setup: fs}
	if err = a.setups.Upsert(r.Context(), rec); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toSetupResponse(rec))
}

func (a *api) getSetup(w http.ResponseWriter, r *http.Request) {
	rec, err := a.setups.Find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toSetupResponse(rec))
}

func (a *api) deleteSetup(w http.ResponseWriter, r *http.Request) {
	if err := a.setups.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toSetupResponse(rec *setup.Record) setupResponse {
	resp := setupResponse{ID: rec.ID, UpdatedAt: rec.UpdatedAt, Facets: []facet.Definition{}}
	if rec.Setup != nil && rec.Setup.Facets != nil {
		resp.Facets = rec.Setup.Facets
	}
	return resp
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
