// Package handler provides HTTP request handlers for the SmartWords API.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts its dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details by MapServiceError
//
// # Response Format
//
//   - WriteData: single resource in a {"data": ...} envelope
//   - WriteCachedData: like WriteData, with a BLAKE2b ETag and 304 support
//   - WriteCachedJSON: the same without the envelope; the search route uses
//     it to serve a bare array of SearchResult objects keyed by "_id"
//   - WriteError: RFC 9457 Problem Details error response
//
// # Routes
//
//	mux := handler.NewRouter(handler.Routes{
//	    Sets:    handler.NewSetHandler(setService, logger),
//	    Health:  handler.NewHealthHandler(handler.HealthHandlerConfig{Store: store}),
//	    Metrics: m.Handler(),
//	})
package handler
