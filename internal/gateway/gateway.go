// Package gateway exposes the resolution pipeline as JSON over HTTP for
// presentation layers that do not speak gRPC.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/models"
	"github.com/Belphemur/StreamResolver/internal/services"
)

// Handler serves the gateway routes
type Handler struct {
	resolver services.StreamResolver
	logger   zerolog.Logger
}

// NewHandler creates a gateway handler
func NewHandler(r services.StreamResolver) *Handler {
	return &Handler{resolver: r, logger: config.GetLogger()}
}

// NewRouter registers every gateway route on a new router.
func NewRouter(r services.StreamResolver) *mux.Router {
	h := NewHandler(r)
	router := mux.NewRouter()
	router.HandleFunc("/api/movie/{id}", h.ResolveMovie).Methods(http.MethodGet)
	router.HandleFunc("/api/tv/{id}/{season}/{episode}", h.ResolveEpisode).Methods(http.MethodGet)
	router.HandleFunc("/api/streams/movie/{id}", h.ListMovieStreams).Methods(http.MethodGet)
	router.HandleFunc("/api/streams/tv/{id}/{season}/{episode}", h.ListEpisodeStreams).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	return router
}

// NewHTTPServer creates the gateway HTTP server.
func NewHTTPServer(address string, port int, r services.StreamResolver) *http.Server {
	if port == 0 {
		port = 8081
	}
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", address, port),
		Handler: NewRouter(r),
	}
}

type resolveResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Year    string `json:"year,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type streamResponse struct {
	Path        string `json:"path"`
	Container   string `json:"container,omitempty"`
	Quality     string `json:"quality,omitempty"`
	QualityName string `json:"quality_name,omitempty"`
}

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResolveMovie returns the selected stream of a movie
// GET /api/movie/{id}
func (h *Handler) ResolveMovie(w http.ResponseWriter, r *http.Request) {
	stream, err := h.resolver.ResolveMovie(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResolveResponse(stream))
}

// ResolveEpisode returns the selected stream of a series episode
// GET /api/tv/{id}/{season}/{episode}
func (h *Handler) ResolveEpisode(w http.ResponseWriter, r *http.Request) {
	req, err := episodeRequest(mux.Vars(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	stream, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResolveResponse(stream))
}

// ListMovieStreams returns every variant of a movie, unfiltered
// GET /api/streams/movie/{id}
func (h *Handler) ListMovieStreams(w http.ResponseWriter, r *http.Request) {
	h.listStreams(w, r, models.ResolveRequest{CatalogID: mux.Vars(r)["id"], Kind: models.Movie})
}

// ListEpisodeStreams returns every variant of an episode, unfiltered
// GET /api/streams/tv/{id}/{season}/{episode}
func (h *Handler) ListEpisodeStreams(w http.ResponseWriter, r *http.Request) {
	req, err := episodeRequest(mux.Vars(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.listStreams(w, r, req)
}

// Health reports liveness
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listStreams(w http.ResponseWriter, r *http.Request, req models.ResolveRequest) {
	variants, err := h.resolver.ListVariants(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	streams := make([]streamResponse, len(variants))
	for i, v := range variants {
		streams[i] = streamResponse{
			Path:        v.Path,
			Container:   v.ContainerHint,
			Quality:     v.Quality.String(),
			QualityName: v.QualityName,
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"streams": streams})
}

func episodeRequest(vars map[string]string) (models.ResolveRequest, error) {
	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		return models.ResolveRequest{}, apperrors.NewInvalidRequestError("season %q is not a number", vars["season"])
	}
	episode, err := strconv.Atoi(vars["episode"])
	if err != nil {
		return models.ResolveRequest{}, apperrors.NewInvalidRequestError("episode %q is not a number", vars["episode"])
	}
	return models.ResolveRequest{
		CatalogID: vars["id"],
		Kind:      models.Series,
		Episode:   &models.EpisodeRef{Season: season, Episode: episode},
	}, nil
}

func toResolveResponse(s *models.SelectedStream) resolveResponse {
	return resolveResponse{URL: s.URL, Title: s.Title, Year: s.Year, Quality: s.Quality.String()}
}

// statusClientClosedRequest is the nginx convention for a caller that went away.
const statusClientClosedRequest = 499

// httpStatus maps an error kind onto the gateway's HTTP status.
func httpStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if errors.Is(err, context.Canceled) {
		return statusClientClosedRequest
	}
	kind, _ := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindInvalidRequest:
		return http.StatusBadRequest
	case apperrors.KindMetadataNotFound,
		apperrors.KindNoSearchResults,
		apperrors.KindNoMatchingMedia,
		apperrors.KindNoPlayableVariant:
		return http.StatusNotFound
	case apperrors.KindMalformedMetadata, apperrors.KindStreamListUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders the per-kind message only; causes stay in the logs.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	kind, _ := apperrors.KindOf(err)
	var body errorBody
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		body.Error.Kind, body.Error.Message = "DeadlineExceeded", "request timed out"
	case errors.Is(err, context.Canceled):
		body.Error.Kind, body.Error.Message = "Canceled", "request canceled"
	default:
		body.Error.Kind, body.Error.Message = kind.String(), apperrors.Message(kind)
	}
	h.writeJSON(w, httpStatus(err), body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write gateway response")
	}
}
