package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the single frontend origin with credentials. An empty origin
// allows any origin without credentials.
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		return cors.AllowAll().Handler
	}

	return cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
