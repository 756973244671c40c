package handler

import "net/http"

// Routes bundles the handlers served by the API
type Routes struct {
	Sets    *SetHandler
	Health  *HealthHandler
	Metrics http.Handler // Optional, serves GET /metrics
}

// NewRouter registers every API route on a new ServeMux
func NewRouter(routes Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", routes.Health.Health)
	if routes.Metrics != nil {
		mux.Handle("GET /metrics", routes.Metrics)
	}

	// Set endpoints
	mux.HandleFunc("GET /set", routes.Sets.List)
	mux.HandleFunc("GET /set/search/{name...}", routes.Sets.Search)
	mux.HandleFunc("GET /set/{id}", routes.Sets.Get)
	mux.HandleFunc("POST /set", routes.Sets.Create)
	mux.HandleFunc("DELETE /set/{id}", routes.Sets.Delete)

	return mux
}
