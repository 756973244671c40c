// Package middleware provides HTTP middleware for the SmartWords API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: request-scoped zap logger and one log line per request
//   - Recovery: turns handler panics into 500 Problem Details
//   - CORS: origin allow-list and preflight handling
//   - RateLimit: per-client token buckets (golang.org/x/time/rate)
//   - Idempotency: replays POST responses for a repeated Idempotency-Key
//   - Compress: gzip response bodies
//   - Metrics: Prometheus request metrics labelled by route pattern
//
// # Ordering
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery(logger),
//	    middleware.CORS(origins),
//	    middleware.RateLimit(limiter),
//	    middleware.Compress,
//	    middleware.Idempotency(store),
//	    middleware.Metrics(m),
//	)
//
// Metrics must stay last so it wraps the mux directly.
package middleware
