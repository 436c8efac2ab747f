// Package auth implements the access gate: a single shared login whose
// bcrypt-hashed credential comes from configuration, with signed JWT
// sessions carried in a cookie or bearer header.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"shelf-locator/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// SessionClaims is the JWT payload for an issued session.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gate checks credentials and manages session tokens.
type Gate struct {
	username     string
	passwordHash string
	secret       []byte
	sessionTTL   time.Duration
	rememberTTL  time.Duration
	logger       zerolog.Logger
}

// NewGate creates a gate from the configured shared credential.
func NewGate(cfg config.AuthConfig, logger zerolog.Logger) *Gate {
	return &Gate{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		secret:       []byte(cfg.SessionSecret),
		sessionTTL:   time.Duration(cfg.SessionTTLHours) * time.Hour,
		rememberTTL:  time.Duration(cfg.RememberTTLHours) * time.Hour,
		logger:       logger.With().Str("component", "auth-gate").Logger(),
	}
}

// Authenticate reports whether the username and password match the
// shared credential. The bcrypt comparison runs even for a wrong
// username so both failure paths cost the same.
func (g *Gate) Authenticate(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)) == nil

	if !usernameOK || !passwordOK {
		g.logger.Warn().Str("username", username).Msg("failed login attempt")
		return false
	}
	return true
}

// TTL returns the session lifetime for the given remember-me choice.
func (g *Gate) TTL(remember bool) time.Duration {
	if remember {
		return g.rememberTTL
	}
	return g.sessionTTL
}

// IssueSession returns a signed session token for the user.
func (g *Gate) IssueSession(username string, remember bool) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.TTL(remember))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	g.logger.Debug().
		Str("username", username).
		Bool("remember", remember).
		Msg("session issued")

	return signed, nil
}

// CheckSession validates a session token and returns the username it
// was issued to.
func (g *Gate) CheckSession(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	return claims.Username, nil
}
