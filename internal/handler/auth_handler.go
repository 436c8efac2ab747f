package handler

import (
	"encoding/json"
	"net/http"

	"shelf-locator/internal/auth"
	"shelf-locator/internal/middleware"
	"shelf-locator/internal/model"

	"github.com/rs/zerolog"
)

// AuthHandler handles the shared login.
type AuthHandler struct {
	gate   *auth.Gate
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(gate *auth.Gate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		gate:   gate,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// loginRequest is the POST /login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// loginResponse carries the issued session token; the same token is
// also set as the session cookie.
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login handles POST /login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if !h.gate.Authenticate(req.Username, req.Password) {
		writeFailure(w, http.StatusUnauthorized, model.ErrInvalidCredentials.Message, h.logger)
		return
	}

	token, err := h.gate.IssueSession(req.Username, req.Remember)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session", h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.gate.TTL(req.Remember).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info().
		Str("username", req.Username).
		Bool("remember", req.Remember).
		Msg("login succeeded")

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}
