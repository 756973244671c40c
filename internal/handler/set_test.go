package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/smartwords/internal/database"
	"github.com/forgo/smartwords/internal/handler"
	"github.com/forgo/smartwords/internal/model"
	"github.com/forgo/smartwords/internal/repository"
	"github.com/forgo/smartwords/internal/service"
	"github.com/forgo/smartwords/internal/testing/fixtures"
	"github.com/forgo/smartwords/internal/testing/helpers"
)

// brokenStore fails every operation with err
type brokenStore struct{ err error }

func (s brokenStore) Find(context.Context, model.SetFilter) ([]model.SetDocument, error) {
	return nil, s.err
}
func (s brokenStore) Insert(context.Context, model.SetDocument) (model.SetDocument, error) {
	return model.SetDocument{}, s.err
}
func (s brokenStore) Delete(context.Context, string) (bool, error) { return false, s.err }
func (s brokenStore) Ping(context.Context) error                   { return s.err }

func newRouter(store service.SetStore) http.Handler {
	svc := service.NewSetService(service.SetServiceConfig{Store: store})
	return handler.NewRouter(handler.Routes{
		Sets:   handler.NewSetHandler(svc, nil),
		Health: handler.NewHealthHandler(handler.HealthHandlerConfig{Store: store, Backend: "memory", Version: "test"}),
	})
}

func seededRouter(t *testing.T) (http.Handler, *repository.MemorySetRepository) {
	t.Helper()
	store := repository.NewMemorySetRepository()
	fixtures.Seed(t, store, fixtures.SetDocument())
	return newRouter(store), store
}

// ============================================================================
// List / Search
// ============================================================================

func TestListSets_EmptyStore_ReturnsEmptyArray(t *testing.T) {
	router := newRouter(repository.NewMemorySetRepository())

	resp := helpers.NewRequest(t, http.MethodGet, "/set").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `{"data":[]}`, resp.Body.String())
}

func TestListSets_ReturnsStoredSet(t *testing.T) {
	router, _ := seededRouter(t)

	resp := helpers.NewRequest(t, http.MethodGet, "/set").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	sets := helpers.DecodeSets(t, resp)
	require.Len(t, sets, 1)
	assert.Equal(t, fixtures.DefaultSetName, sets[0].Name)
	assert.Equal(t, fixtures.DefaultSetDescription, sets[0].Description)
	assert.Len(t, sets[0].Words, 2)
	assert.NotEmpty(t, sets[0].ID)
}

func TestSearchSets(t *testing.T) {
	router, _ := seededRouter(t)

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"exact name", "/set/search/Test%20Set", 1},
		{"prefix", "/set/search/Test", 1},
		{"different case", "/set/search/tEST", 1},
		{"inner substring", "/set/search/st%20S", 1},
		{"no match", "/set/search/Non-existent%20name", 0},
		{"empty name lists all", "/set/search/", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := helpers.NewRequest(t, http.MethodGet, tt.path).Serve(router)

			helpers.AssertStatus(t, resp, http.StatusOK)
			assert.Len(t, helpers.DecodeSearchResults(t, resp), tt.count)
		})
	}
}

func TestSearchSets_ServesBareArrayKeyedByUnderscoreID(t *testing.T) {
	store := repository.NewMemorySetRepository()
	stored := fixtures.Seed(t, store, fixtures.SetDocument())
	router := newRouter(store)

	resp := helpers.NewRequest(t, http.MethodGet, "/set/search/test").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(strings.TrimSpace(resp.Body.String()), "["), "body: %s", resp.Body.String())

	results := helpers.DecodeSearchResults(t, resp)
	require.Len(t, results, 1)
	assert.Equal(t, stored[0].ID, results[0].ID)
	assert.Equal(t, fixtures.DefaultSetName, results[0].Name)
	assert.Equal(t, fixtures.DefaultSetDescription, results[0].Description)
	assert.Len(t, results[0].Words, 2)
	assert.NotContains(t, resp.Body.String(), `"data"`)
}

func TestSearchSets_NoMatch_ReturnsEmptyArray(t *testing.T) {
	router, _ := seededRouter(t)

	resp := helpers.NewRequest(t, http.MethodGet, "/set/search/zzz").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestSearchSets_ETag_NotModified(t *testing.T) {
	router, _ := seededRouter(t)

	first := helpers.NewRequest(t, http.MethodGet, "/set/search/Test").Serve(router)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	cached := helpers.NewRequest(t, http.MethodGet, "/set/search/Test").
		WithHeader("If-None-Match", etag).
		Serve(router)
	helpers.AssertStatus(t, cached, http.StatusNotModified)
}

func TestSearchSets_StoreFailure_ReturnsProblem(t *testing.T) {
	router := newRouter(brokenStore{err: errors.New("boom")})

	resp := helpers.NewRequest(t, http.MethodGet, "/set/search/x").Serve(router)

	helpers.AssertProblemDetails(t, resp, http.StatusInternalServerError, model.ErrCodeInternal)
}

func TestListSets_ETag_NotModified(t *testing.T) {
	router, store := seededRouter(t)

	first := helpers.NewRequest(t, http.MethodGet, "/set").Serve(router)
	helpers.AssertStatus(t, first, http.StatusOK)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	cached := helpers.NewRequest(t, http.MethodGet, "/set").
		WithHeader("If-None-Match", etag).
		Serve(router)
	helpers.AssertStatus(t, cached, http.StatusNotModified)
	assert.Empty(t, cached.Body.String())
	assert.Equal(t, etag, cached.Header().Get("ETag"))

	fixtures.Seed(t, store, fixtures.SetDocument(fixtures.WithName("Another")))

	changed := helpers.NewRequest(t, http.MethodGet, "/set").
		WithHeader("If-None-Match", etag).
		Serve(router)
	helpers.AssertStatus(t, changed, http.StatusOK)
	assert.NotEqual(t, etag, changed.Header().Get("ETag"))
	assert.Len(t, helpers.DecodeSets(t, changed), 2)
}

func TestListSets_CorruptStoredSet_Returns500(t *testing.T) {
	router, store := seededRouter(t)
	store.Put(fixtures.SetDocument(fixtures.WithID("corrupt"), fixtures.WithName("")))

	resp := helpers.NewRequest(t, http.MethodGet, "/set").Serve(router)

	problem := helpers.AssertProblemDetails(t, resp, http.StatusInternalServerError, model.ErrCodeInternal)
	assert.Empty(t, problem.Errors)
	assert.Contains(t, problem.Detail, "list sets")
}

func TestListSets_StoreFailure_Returns500(t *testing.T) {
	router := newRouter(brokenStore{err: fmt.Errorf("%w: connection refused", database.ErrConnection)})

	resp := helpers.NewRequest(t, http.MethodGet, "/set").Serve(router)

	helpers.AssertProblemDetails(t, resp, http.StatusInternalServerError, model.ErrCodeInternal)
}

// ============================================================================
// Get
// ============================================================================

func TestGetSet(t *testing.T) {
	store := repository.NewMemorySetRepository()
	stored := fixtures.Seed(t, store, fixtures.SetDocument())
	router := newRouter(store)

	resp := helpers.NewRequest(t, http.MethodGet, "/set/"+stored[0].ID).Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	set := helpers.DecodeSet(t, resp)
	assert.Equal(t, stored[0].ID, set.ID)
	assert.Equal(t, fixtures.DefaultSetName, set.Name)
}

func TestGetSet_Unknown_Returns404(t *testing.T) {
	router, _ := seededRouter(t)

	resp := helpers.NewRequest(t, http.MethodGet, "/set/does-not-exist").Serve(router)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

// ============================================================================
// Create
// ============================================================================

func TestCreateSet_Valid_Returns201(t *testing.T) {
	store := repository.NewMemorySetRepository()
	router := newRouter(store)

	resp := helpers.NewRequest(t, http.MethodPost, "/set").
		WithBody(fixtures.CreateSetRequest()).
		Serve(router)

	helpers.AssertStatus(t, resp, http.StatusCreated)
	set := helpers.DecodeSet(t, resp)
	assert.NotEmpty(t, set.ID)
	assert.Equal(t, "/set/"+set.ID, resp.Header().Get("Location"))
	require.Len(t, set.Words, 2)
	for _, w := range set.Words {
		assert.NotEmpty(t, w.ID)
	}

	docs, err := store.Find(context.Background(), model.SetFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCreateSet_Invalid_Returns422WithEveryField(t *testing.T) {
	store := repository.NewMemorySetRepository()
	router := newRouter(store)

	resp := helpers.NewRequest(t, http.MethodPost, "/set").
		WithBody(model.CreateSetRequest{Words: []model.CreateWordRequest{}}).
		Serve(router)

	problem := helpers.AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeValidation)
	fields := make([]string, 0, len(problem.Errors))
	for _, fe := range problem.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"name", "description", "words"}, fields)

	docs, err := store.Find(context.Background(), model.SetFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs, "nothing should be stored")
}

func TestCreateSet_NameTooLong_Returns422(t *testing.T) {
	router := newRouter(repository.NewMemorySetRepository())

	req := fixtures.CreateSetRequest(func(r *model.CreateSetRequest) {
		r.Name = fixtures.TooLong(model.MaxSetNameLength)
	})
	resp := helpers.NewRequest(t, http.MethodPost, "/set").WithBody(req).Serve(router)

	helpers.AssertValidationError(t, resp, "name")
}

func TestCreateSet_BadBody_Returns400(t *testing.T) {
	router := newRouter(repository.NewMemorySetRepository())

	for name, body := range map[string]string{
		"malformed":     `{"name":`,
		"unknown field": `{"name":"a","description":"b","words":[],"extra":true}`,
		"wrong type":    `{"name":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := helpers.NewRequest(t, http.MethodPost, "/set").WithRawBody(body).Serve(router)
			helpers.AssertProblemDetails(t, resp, http.StatusBadRequest, model.ErrCodeInvalidInput)
		})
	}
}

// ============================================================================
// Delete
// ============================================================================

func TestDeleteSet(t *testing.T) {
	store := repository.NewMemorySetRepository()
	stored := fixtures.Seed(t, store, fixtures.SetDocument())
	router := newRouter(store)

	resp := helpers.NewRequest(t, http.MethodDelete, "/set/"+stored[0].ID).Serve(router)
	helpers.AssertStatus(t, resp, http.StatusNoContent)
	assert.Empty(t, resp.Body.String())

	again := helpers.NewRequest(t, http.MethodDelete, "/set/"+stored[0].ID).Serve(router)
	helpers.AssertProblemDetails(t, again, http.StatusNotFound, model.ErrCodeNotFound)
}

// ============================================================================
// Health
// ============================================================================

func TestHealth_StoreUp_Returns200(t *testing.T) {
	router := newRouter(repository.NewMemorySetRepository())

	resp := helpers.NewRequest(t, http.MethodGet, "/health").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	var body handler.HealthResponse
	helpers.DecodeResponse(t, resp, &body)
	assert.Equal(t, handler.HealthResponse{Status: "ok", Store: "memory", Version: "test"}, body)
}

func TestHealth_StoreDown_Returns503(t *testing.T) {
	router := newRouter(brokenStore{err: errors.New("down")})

	resp := helpers.NewRequest(t, http.MethodGet, "/health").Serve(router)

	helpers.AssertProblemDetails(t, resp, http.StatusServiceUnavailable, model.ErrCodeDatabase)
}

func TestRouter_UnknownMethod_Returns405(t *testing.T) {
	router := newRouter(repository.NewMemorySetRepository())

	resp := helpers.NewRequest(t, http.MethodPatch, "/set").Serve(router)

	helpers.AssertStatus(t, resp, http.StatusMethodNotAllowed)
}
