package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"gitbrowse/internal/codec"
	"gitbrowse/internal/config"
	"gitbrowse/internal/domain"
	"gitbrowse/internal/listing"
	"gitbrowse/internal/repository"
	"gitbrowse/internal/service"
)

// ListingHandler serves the repository listing API
type ListingHandler struct {
	listing *service.ListingService
	catalog *service.CatalogService
	cfg     *config.Config
	auth    *Authenticator
	logger  zerolog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listing *service.ListingService, catalog *service.CatalogService, cfg *config.Config, logger zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		listing: listing,
		catalog: catalog,
		cfg:     cfg,
		auth:    NewAuthenticator(cfg),
		logger:  logger,
	}
}

// Register adds the listing routes to mux
func (h *ListingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/repositories", h.List)
	mux.HandleFunc("GET /api/repositories/export", h.Export)
	mux.HandleFunc("GET /api/repositories/{name...}", h.Get)
	mux.HandleFunc("PUT /api/repositories/{name...}", h.Upsert)
	mux.HandleFunc("DELETE /api/repositories/{name...}", h.Delete)
	mux.HandleFunc("GET /api/settings", h.Settings)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, listing.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrInvalidSort),
		errors.Is(err, codec.ErrUnknownFormat),
		errors.Is(err, domain.ErrRepositoryNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// fail writes err with the status errorStatus picks for it
func (h *ListingHandler) fail(w http.ResponseWriter, message string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg(message)
	}
	h.writeError(w, message, err.Error(), status)
}

func (h *ListingHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON")
	}
}

func (h *ListingHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode error response")
	}
}
