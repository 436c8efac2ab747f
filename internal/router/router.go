package router

import (
	"net/http"

	"shelf-locator/internal/auth"
	"shelf-locator/internal/handler"
	"shelf-locator/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	searchHandler *handler.SearchHandler,
	uploadHandler *handler.UploadHandler,
	authHandler *handler.AuthHandler,
	gate *auth.Gate,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/search", searchHandler.Search)
	mux.HandleFunc("/upload-csv", uploadHandler.Upload)

	// Product collection handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.ByID(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			productHandler.List(w, r)
		case http.MethodPost:
			productHandler.Create(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> SessionAuth
	var h http.Handler = mux
	h = middleware.SessionAuth(gate, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
