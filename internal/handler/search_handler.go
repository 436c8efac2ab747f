package handler

import (
	"net/http"

	"shelf-locator/internal/service"

	"github.com/rs/zerolog"
)

// SearchHandler handles clerk search requests.
type SearchHandler struct {
	service service.SearchService
	logger  zerolog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service service.SearchService, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger.With().Str("handler", "search").Logger(),
	}
}

// Search handles POST /search form submissions. search_type selects
// exact-SKU ("sku", the default) or substring-name ("name") lookup.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data", h.logger)
		return
	}

	term := r.FormValue("search_term")
	mode := r.FormValue("search_type")

	result, err := h.service.Search(r.Context(), term, mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
