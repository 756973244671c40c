package middleware

import (
	"net/http"
	"time"

	"github.com/forgo/smartwords/internal/metrics"
)

// Metrics records request count, latency and in-flight requests.
//
// The route label is the ServeMux pattern that matched, which the mux stores
// on the request it receives. Install Metrics directly around the mux so both
// see the same *http.Request.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.TrackInFlight()
			defer done()

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
