package handlers

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
)

// WithCORS lets the dashboard origins call the API with credentials.
func WithCORS(origins []string, next http.Handler) http.Handler {
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization", requestIDHeader}),
		gorillahandlers.ExposedHeaders([]string{requestIDHeader}),
		gorillahandlers.AllowCredentials(),
	)(next)
}
