package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shelf-locator/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse is the {success:false, message} envelope the catalog
// API uses for validation and duplicate failures.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeFailure writes a {success:false, message} response.
func writeFailure(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("message", message).Int("status", status).Msg("request failed")
	writeJSON(w, status, FailureResponse{Success: false, Message: message})
}

// writeDomainFailure maps a service error onto the failure envelope:
// validation and duplicate errors are 400, missing products 404, and
// anything else a 500 carrying the underlying message.
func writeDomainFailure(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch {
		case domainErr.IsValidation():
			status = http.StatusBadRequest
		case domainErr.Code == model.ErrCodeProductNotFound:
			status = http.StatusNotFound
		case domainErr.Code == model.ErrCodeUnauthorised:
			status = http.StatusUnauthorized
		}
		writeFailure(w, status, domainErr.Message, logger)
		return
	}

	writeFailure(w, http.StatusInternalServerError, err.Error(), logger)
}
