package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/logging"
	"github.com/forgo/smartwords/internal/model"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	store   Pinger
	backend string
	version string
	timeout time.Duration
	logger  *zap.Logger
}

// HealthHandlerConfig holds dependencies for the health handler
type HealthHandlerConfig struct {
	Store   Pinger
	Backend string        // Store backend name reported in the response
	Version string        // Optional
	Timeout time.Duration // Store ping timeout (default 2s)
	Logger  *zap.Logger   // Optional
}

// HealthResponse is the body of a healthy /health response
type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Version string `json:"version,omitempty"`
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg HealthHandlerConfig) *HealthHandler {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &HealthHandler{
		store:   cfg.Store,
		backend: cfg.Backend,
		version: cfg.Version,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logging.FromContext(r.Context(), h.logger).Warn("health check failed",
			zap.String("backend", h.backend),
			zap.Error(err),
		)
		WriteError(w, model.NewStoreUnavailableError(h.backend+" set store is unreachable"))
		return
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Store:   h.backend,
		Version: h.version,
	})
}
