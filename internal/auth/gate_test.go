package auth

import (
	"testing"
	"time"

	"shelf-locator/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testGate(t *testing.T) *Gate {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewGate(config.AuthConfig{
		Username:         "admin",
		PasswordHash:     string(hash),
		SessionSecret:    "test-secret",
		SessionTTLHours:  24,
		RememberTTLHours: 720,
	}, zerolog.Nop())
}

func TestGate_Authenticate(t *testing.T) {
	gate := testGate(t)

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"Valid credentials", "admin", "hunter2", true},
		{"Wrong password", "admin", "hunter3", false},
		{"Wrong username", "root", "hunter2", false},
		{"Both wrong", "root", "hunter3", false},
		{"Empty credentials", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Authenticate(tt.username, tt.password))
		})
	}
}

func TestGate_SessionRoundTrip(t *testing.T) {
	gate := testGate(t)

	token, err := gate.IssueSession("admin", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := gate.CheckSession(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestGate_CheckSession_Invalid(t *testing.T) {
	gate := testGate(t)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := gate.CheckSession("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("Token signed with a different secret", func(t *testing.T) {
		other := NewGate(config.AuthConfig{
			Username:         "admin",
			PasswordHash:     "irrelevant",
			SessionSecret:    "other-secret",
			SessionTTLHours:  24,
			RememberTTLHours: 720,
		}, zerolog.Nop())

		token, err := other.IssueSession("admin", false)
		require.NoError(t, err)

		_, err = gate.CheckSession(token)
		assert.Error(t, err)
	})

	t.Run("Expired token", func(t *testing.T) {
		claims := &SessionClaims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = gate.CheckSession(token)
		assert.Error(t, err)
	})

	t.Run("Unsigned token rejected", func(t *testing.T) {
		claims := &SessionClaims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = gate.CheckSession(token)
		assert.Error(t, err)
	})
}

func TestGate_TTL(t *testing.T) {
	gate := testGate(t)

	assert.Equal(t, 24*time.Hour, gate.TTL(false))
	assert.Equal(t, 720*time.Hour, gate.TTL(true))
}

func TestGate_RememberSessionExpiry(t *testing.T) {
	gate := testGate(t)

	token, err := gate.IssueSession("admin", true)
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 719*time.Hour)
	assert.LessOrEqual(t, remaining, 720*time.Hour)
}
