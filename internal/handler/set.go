package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/forgo/smartwords/internal/logging"
	"github.com/forgo/smartwords/internal/model"
	"github.com/forgo/smartwords/internal/service"
)

// maxSetBodyBytes bounds a create request; a maximal set is far below it
const maxSetBodyBytes = 1 << 20

// SetHandler handles set HTTP requests
type SetHandler struct {
	svc    *service.SetService
	logger *zap.Logger
}

// NewSetHandler creates a new set handler
func NewSetHandler(svc *service.SetService, logger *zap.Logger) *SetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetHandler{svc: svc, logger: logger}
}

// List handles GET /set - every set
func (h *SetHandler) List(w http.ResponseWriter, r *http.Request) {
	h.findAll(w, r, "")
}

// Search handles GET /set/search/{name...} - sets whose name contains name.
// An empty name lists every set.
//
// This is the route the search page polls on every keystroke. It answers in
// the page's shape: a bare array of SearchResult objects keyed by "_id".
func (h *SetHandler) Search(w http.ResponseWriter, r *http.Request) {
	sets, ok := h.find(w, r, r.PathValue("name"))
	if !ok {
		return
	}
	WriteCachedJSON(w, r, NewSearchResults(sets))
}

func (h *SetHandler) findAll(w http.ResponseWriter, r *http.Request, name string) {
	sets, ok := h.find(w, r, name)
	if !ok {
		return
	}
	WriteCachedData(w, r, sets)
}

func (h *SetHandler) find(w http.ResponseWriter, r *http.Request, name string) ([]*model.Set, bool) {
	sets, err := h.svc.FindAll(r.Context(), name)
	if err != nil {
		h.handleError(w, r, err, "list sets")
		return nil, false
	}
	return sets, true
}

// SearchResult is one set as the search page reads it
type SearchResult struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Words       []model.Word `json:"words"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewSearchResults converts sets, keeping their order. The result is never nil.
func NewSearchResults(sets []*model.Set) []SearchResult {
	out := make([]SearchResult, 0, len(sets))
	for _, s := range sets {
		out = append(out, SearchResult{
			ID:          s.ID(),
			Name:        s.Name(),
			Description: s.Description(),
			Words:       s.Words(),
			CreatedAt:   s.CreatedAt(),
		})
	}
	return out
}

// Get handles GET /set/{id}
func (h *SetHandler) Get(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("id")
	if setID == "" {
		WriteError(w, model.NewBadRequestError("set ID required"))
		return
	}

	set, err := h.svc.FindByID(r.Context(), setID)
	if err != nil {
		h.handleError(w, r, err, "get set")
		return
	}

	WriteData(w, http.StatusOK, set)
}

// Create handles POST /set
func (h *SetHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSetBodyBytes)

	var req model.CreateSetRequest
	if err := DecodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, model.NewBadRequestError("request body too large"))
			return
		}
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	set, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err, "create set")
		return
	}

	w.Header().Set("Location", "/set/"+set.ID())
	WriteData(w, http.StatusCreated, set)
}

// Delete handles DELETE /set/{id}
func (h *SetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("id")
	if setID == "" {
		WriteError(w, model.NewBadRequestError("set ID required"))
		return
	}

	if err := h.svc.Delete(r.Context(), setID); err != nil {
		h.handleError(w, r, err, "delete set")
		return
	}

	WriteNoContent(w)
}

// handleError converts service errors to HTTP responses, logging server-side failures
func (h *SetHandler) handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), h.logger).Error(operation+" failed", zap.Error(err))
	}
	WriteError(w, pd)
}
