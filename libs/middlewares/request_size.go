package middlewares

import (
	"net/http"
)

// DefaultMaxRequestSize is the body limit for JSON API requests
const DefaultMaxRequestSize int64 = 1 << 20

// RequestSizeLimitMiddleware rejects bodies larger than maxRequestSize bytes
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"message":"Request body too large"}`))
				return
			}

			// Bodies with unknown length are cut off while being read
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
