package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patwell/ipgate/internal/cache"
	"github.com/patwell/ipgate/internal/domain/override"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
	"github.com/patwell/ipgate/internal/interfaces/http/handlers"
	"github.com/patwell/ipgate/internal/interfaces/http/middleware"
	"github.com/patwell/ipgate/internal/resolver"
)

// stubAdapter answers every query with a fixed record list and counts calls.
type stubAdapter[T any] struct {
	name    string
	records []T
	calls   atomic.Int64
}

func (s *stubAdapter[T]) Name() string { return s.name }

func (s *stubAdapter[T]) Query(_ context.Context, _ string) ([]T, error) {
	s.calls.Add(1)
	return s.records, nil
}

type harness struct {
	router    *gin.Engine
	store     *override.Store
	patentsUp *stubAdapter[records.Patent]
	marksUp   *stubAdapter[records.Trademark]
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := override.NewStore()
	mem := cache.NewMemory()
	log := logging.NewNopLogger()

	patentsUp := &stubAdapter[records.Patent]{name: "peds"}
	marksUp := &stubAdapter[records.Trademark]{name: "tsdr"}

	patents := resolver.New(resolver.Config[records.Patent]{
		Domain:       "patents",
		Cache:        mem,
		TTL:          time.Hour,
		Overrides:    store,
		FromOverride: func(rec override.Record) []records.Patent { return rec.Patents },
		Granted:      records.Patent.Granted,
		Adapters:     []resolver.Adapter[records.Patent]{patentsUp},
		Logger:       log,
	})
	trademarks := resolver.New(resolver.Config[records.Trademark]{
		Domain:       "trademarks",
		Cache:        mem,
		TTL:          time.Hour,
		Overrides:    store,
		FromOverride: func(rec override.Record) []records.Trademark { return rec.Trademarks },
		Granted:      records.Trademark.Registered,
		Adapters:     []resolver.Adapter[records.Trademark]{marksUp},
		Logger:       log,
	})

	router := NewRouter(RouterConfig{
		SearchHandler: handlers.NewSearchHandler(patents, trademarks),
		AdminHandler:  handlers.NewAdminHandler(store, log),
		HealthHandler: handlers.NewHealthHandler(mem, store, "test"),
		Mode:          gin.TestMode,
		Logger:        log,
		LoggingConfig: middleware.DefaultLoggingConfig(),
	})

	return &harness{router: router, store: store, patentsUp: patentsUp, marksUp: marksUp}
}

func (h *harness) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodePatentResult(t *testing.T, w *httptest.ResponseRecorder) records.SearchResult[records.Patent] {
	t.Helper()
	var out records.SearchResult[records.Patent]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSearchPatents_MissingAssignee(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/patents/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Code)
	assert.Contains(t, body.Message, "assignee")

	// Rejected before any upstream work.
	assert.Equal(t, int64(0), h.patentsUp.calls.Load())
}

func TestSearchTrademarks_MissingOwner(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/api/trademarks/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPatents_PunctuationOnlyAssignee(t *testing.T) {
	h := newHarness(t)

	// Present but unmatchable: answered with the canonical empty shape,
	// not rejected. Only a missing parameter is a client error.
	w := h.do(t, http.MethodGet, "/api/patents/search?assignee=%21%21%21", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decodePatentResult(t, w)
	assert.Equal(t, records.SourceNone, got.Source)
	assert.Zero(t, got.Total)
	assert.Empty(t, got.List)
	assert.Equal(t, int64(0), h.patentsUp.calls.Load())
}

func TestSearchPatents_SeededOverride(t *testing.T) {
	h := newHarness(t)
	date := "2019-09-10"
	_, err := h.store.Upsert("Kidney-Aide, Inc.", []records.Patent{
		{PatentNumber: "1", Status: "Granted", PatentDate: &date},
		{PatentNumber: "2", Status: "Granted", PatentDate: &date},
		{PatentNumber: "3", Status: "Granted", PatentDate: &date},
		{PatentNumber: "4", Status: "Pending"},
	}, nil)
	require.NoError(t, err)

	w := h.do(t, http.MethodGet, "/api/patents/search?assignee=KidneyAide", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decodePatentResult(t, w)
	assert.Equal(t, records.SourceClientDatabase, got.Source)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 3, got.Granted)
	assert.Equal(t, 1, got.Applications)
	assert.Equal(t, int64(0), h.patentsUp.calls.Load())
}

func TestAdminUpsertThenSearch(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/admin/clients",
		`{"name": "Acme", "patents": [], "trademarks": []}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Key     string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Message)
	assert.Equal(t, "acme", created.Key)

	// Any spelling that normalizes to "acme" now resolves from the override,
	// even though its lists are empty.
	w = h.do(t, http.MethodGet, "/api/patents/search?assignee=ACME!", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodePatentResult(t, w)
	assert.Equal(t, records.SourceClientDatabase, got.Source)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, int64(0), h.patentsUp.calls.Load())
}

func TestAdminUpsert_MissingName(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/admin/clients", `{"patents": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpsert_NameNormalizesToNothing(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/admin/clients", `{"name": "???"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminDelete(t *testing.T) {
	h := newHarness(t)
	_, err := h.store.Upsert("Acme", nil, nil)
	require.NoError(t, err)

	w := h.do(t, http.MethodDelete, "/admin/clients/ACME", "")
	require.Equal(t, http.StatusOK, w.Code)

	var deleted struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.True(t, deleted.Success)
	assert.NotEmpty(t, deleted.Message)

	w = h.do(t, http.MethodDelete, "/admin/clients/Acme", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminList(t *testing.T) {
	h := newHarness(t)
	_, err := h.store.Upsert("Beta LLC", nil, nil)
	require.NoError(t, err)
	_, err = h.store.Upsert("Acme", nil, nil)
	require.NoError(t, err)

	w := h.do(t, http.MethodGet, "/admin/clients", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Clients map[string]struct {
			Name string `json:"name"`
		} `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Clients, 2)
	assert.Equal(t, "Acme", body.Clients["acme"].Name)
	assert.Equal(t, "Beta LLC", body.Clients["betallc"].Name)
}

func TestSearchPatents_NoneOutcomeIsCached(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/patents/search?assignee=NoSuchCompany123", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodePatentResult(t, w)
	assert.Equal(t, records.SourceNone, got.Source)
	assert.Equal(t, 0, got.Total)
	assert.NotNil(t, got.List)

	w = h.do(t, http.MethodGet, "/api/patents/search?assignee=NoSuchCompany123", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), h.patentsUp.calls.Load())
}

func TestSearchTrademarks_Upstream(t *testing.T) {
	h := newHarness(t)
	h.marksUp.records = []records.Trademark{
		{SerialNumber: "88123456", Mark: "ACME", Status: "Registered"},
		{SerialNumber: "90111222", Mark: "ACME PRO", Status: "Pending examination"},
	}

	w := h.do(t, http.MethodGet, "/api/trademarks/search?owner=Acme", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got records.SearchResult[records.Trademark]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, records.SourceUSPTOAPI, got.Source)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Granted)
	assert.Equal(t, 1, got.Applications)
}

func TestHealthAndRoot(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Contains(t, health, "timestamp")

	w = h.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var root map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "ipgate", root["service"])
}

func TestRequestIDEchoed(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.HeaderRequestID))
}
