package httpapi

import (
	"net/http"
	"strings"
)

// CORSConfig controls the cross-origin policy applied by CORS.
type CORSConfig struct {
	AllowedOrigin string
}

const corsAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"

// CORS wraps the handler with a single-origin CORS policy. All request
// headers are allowed and credentials are never exposed. Preflight requests
// short-circuit with 204.
func CORS(cfg CORSConfig, next http.Handler) http.Handler {
	origin := strings.TrimSpace(cfg.AllowedOrigin)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				w.Header().Set("Access-Control-Allow-Headers", requested)
			} else {
				w.Header().Set("Access-Control-Allow-Headers", "*")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
