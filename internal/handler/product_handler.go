package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shelf-locator/internal/model"
	"shelf-locator/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalog maintenance HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// productEnvelope wraps a mutated product in the {success, product}
// contract.
type productEnvelope struct {
	Success bool           `json:"success"`
	Product *model.Product `json:"product"`
}

// deleteEnvelope acknowledges a delete.
type deleteEnvelope struct {
	Success bool `json:"success"`
}

// List handles GET /api/products requests with pagination and an
// optional name filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid page parameter", h.logger)
			return
		}
	}

	perPage := 10
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		var err error
		perPage, err = strconv.Atoi(perPageStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid per_page parameter", h.logger)
			return
		}
	}

	nameFilter := r.URL.Query().Get("search")

	result, err := h.service.List(r.Context(), page, perPage, nameFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainFailure(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productEnvelope{Success: true, Product: product})
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainFailure(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainFailure(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productEnvelope{Success: true, Product: product})
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainFailure(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, deleteEnvelope{Success: true})
}

// ByID routes /api/products/{id} requests by method.
func (h *ProductHandler) ByID(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Path[len("/api/products/"):]
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.GetByID(w, r, id)
	case http.MethodPut:
		h.Update(w, r, id)
	case http.MethodDelete:
		h.Delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}
