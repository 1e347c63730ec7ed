package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/author-analysis/gateway/config"
	"github.com/author-analysis/gateway/pkg/server/handlertools"
)

const (
	versionHeader  = "X-Gateway-Version"
	contractHeader = "X-Profiling-Contract"
)

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(
				versionHeader,
				config.VersionString,
			)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// RequestID reuses the caller's request id header or generates a new one, stores
// it in the request context and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(handlertools.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(handlertools.RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), handlertools.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContractVersion tags responses with the version of the request/response
// contract the route serves.
func ContractVersion(version string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(contractHeader, version)
			next.ServeHTTP(w, r)
		})
	}
}
