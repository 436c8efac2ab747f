package handler

import (
	"fmt"
	"net/http"
	"strings"

	"shelf-locator/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadSize caps CSV uploads at 10 MiB.
const maxUploadSize = 10 << 20

// UploadHandler handles bulk CSV imports.
type UploadHandler struct {
	service service.ImportService
	logger  zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service service.ImportService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// uploadResponse is the {success, message, errors} import envelope.
type uploadResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// Upload handles POST /upload-csv multipart requests. The file part
// must be named "file" and carry a .csv extension.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "No file part", h.logger)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeFailure(w, http.StatusBadRequest, "No selected file", h.logger)
		return
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeFailure(w, http.StatusBadRequest, "File must be a CSV", h.logger)
		return
	}

	result, err := h.service.ImportCSV(r.Context(), file)
	if err != nil {
		// The commit failed: the whole batch is reported as failed.
		writeFailure(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	h.logger.Info().
		Str("file", header.Filename).
		Int("imported", result.SuccessCount).
		Int("rejected", result.ErrorCount).
		Msg("CSV processed")

	writeJSON(w, http.StatusOK, uploadResponse{
		Success: true,
		Message: fmt.Sprintf("Processed %d products successfully, %d errors", result.SuccessCount, result.ErrorCount),
		Errors:  result.Errors,
	})
}
