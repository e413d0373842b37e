package utils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter constructs the base mux router with CORS and the health route.
func NewRouter(corsOrigin string) *mux.Router {
	r := mux.NewRouter()

	r.Use(CORSMiddleware(corsOrigin))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}

// CacheControlMiddleware marks GET responses as cacheable for maxAge, with an
// equal stale-while-revalidate window. Applied to the catalog routes, whose
// payloads are already served from a cache of the same lifetime.
func CacheControlMiddleware(maxAge time.Duration) mux.MiddlewareFunc {
	header := fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(maxAge.Seconds()), int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Cache-Control", header)
			}
			next.ServeHTTP(w, r)
		})
	}
}
