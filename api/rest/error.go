package rest

import (
	"net/http"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetquery"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/lucene"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// errBadRequest marks request problems detected by the handlers themselves.
var errBadRequest = xerrors.New("bad request")

func badRequest(msg string) error {
	return xerrors.Errorf("%s: %w", msg, errBadRequest)
}

func malformedBody(err error) error {
	if facet.IsInvalid(err) {
		return err
	}
	return xerrors.Errorf("malformed request body: %v: %w", err, errBadRequest)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error onto the HTTP status reported to the client.
func statusFor(err error) int {
	var (
		synErr  *lucene.SyntaxError
		modeErr *facet.UnsupportedModeError
	)
	switch {
	case xerrors.Is(err, facetquery.ErrConfigurationNotFound),
		xerrors.Is(err, index.ErrIndexNotFound),
		xerrors.Is(err, index.ErrNotFound),
		xerrors.Is(err, setup.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, errBadRequest),
		xerrors.As(err, &synErr),
		xerrors.As(err, &modeErr),
		facet.IsInvalid(err),
		xerrors.Is(err, index.ErrQueryRejected),
		xerrors.Is(err, index.ErrMissingID),
		xerrors.Is(err, setup.ErrMissingSetup):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}
