package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scholargraph/infrastructure/config"
	"scholargraph/infrastructure/di"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		RequestID  string `json:"request_id"`
		Pagination *struct {
			Page       int  `json:"page"`
			Total      int  `json:"total"`
			TotalPages int  `json:"total_pages"`
			HasNext    bool `json:"has_next"`
		} `json:"pagination"`
	} `json:"meta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type api struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = "test"
	cfg.Logging.Level = "error"
	cfg.Metrics.Namespace = "resttest"

	container, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	return &api{t: t, handler: container.Router}
}

func (a *api) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *api) mustDo(method, path string, body interface{}, status int) envelope {
	a.t.Helper()
	rec, env := a.do(method, path, body)
	require.Equal(a.t, status, rec.Code, rec.Body.String())
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (a *api) seed() {
	a.t.Helper()
	for _, aff := range []struct {
		id   string
		x, y int
	}{
		{"mit", 0, 0},
		{"eth", 10, 0},
		{"kth", 0, 10},
		{"ucl", 50, 50},
	} {
		a.mustDo(http.MethodPost, "/api/v1/affiliations", map[string]interface{}{
			"id": aff.id, "name": strings.ToUpper(aff.id), "x": aff.x, "y": aff.y,
		}, http.StatusCreated)
	}

	a.mustDo(http.MethodPost, "/api/v1/publications", map[string]interface{}{
		"id": 1, "title": "Graphs", "year": 2001, "affiliations": []string{"mit", "eth"},
	}, http.StatusCreated)
	a.mustDo(http.MethodPost, "/api/v1/publications", map[string]interface{}{
		"id": 2, "title": "More graphs", "year": 2005, "affiliations": []string{"eth", "kth"},
	}, http.StatusCreated)
}

func TestHealthEndpoints(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/health", "/ready"} {
		rec, _ := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestAffiliationLifecycle(t *testing.T) {
	a := newAPI(t)

	created := a.mustDo(http.MethodPost, "/api/v1/affiliations",
		map[string]interface{}{"id": "mit", "name": "MIT", "x": 3, "y": 4}, http.StatusCreated)
	assert.True(t, created.Success)
	view := decodeData[map[string]interface{}](t, created)
	assert.Equal(t, "mit", view["id"])
	assert.Equal(t, float64(3), view["x"])

	got := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/mit", nil, http.StatusOK))
	assert.Equal(t, "MIT", got["name"])

	moved := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodPut, "/api/v1/affiliations/mit/coord", map[string]int{"x": 7, "y": 8}, http.StatusOK))
	assert.Equal(t, float64(7), moved["x"])
	assert.Equal(t, float64(8), moved["y"])

	at := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/at?x=7&y=8", nil, http.StatusOK))
	assert.Equal(t, "mit", at["id"])

	rec, _ := a.do(http.MethodDelete, "/api/v1/affiliations/mit", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, env := a.do(http.MethodGet, "/api/v1/affiliations/mit", nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Type)
}

func TestCreateAffiliationErrors(t *testing.T) {
	a := newAPI(t)
	a.mustDo(http.MethodPost, "/api/v1/affiliations",
		map[string]interface{}{"id": "mit", "name": "MIT", "x": 0, "y": 0}, http.StatusCreated)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantType   string
	}{
		{
			name:       "duplicate id",
			body:       map[string]interface{}{"id": "mit", "name": "Other", "x": 1, "y": 1},
			wantStatus: http.StatusConflict,
			wantType:   "CONFLICT",
		},
		{
			name:       "missing coordinate",
			body:       map[string]interface{}{"id": "eth", "name": "ETH", "x": 1},
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
		},
		{
			name:       "coordinate out of range",
			body:       map[string]interface{}{"id": "far", "name": "Far", "x": 3037000500, "y": 0},
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
		},
		{
			name:       "unknown field",
			body:       map[string]interface{}{"id": "eth", "name": "ETH", "x": 1, "y": 1, "z": 1},
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
		},
		{
			name:       "malformed json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
		},
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := a.do(http.MethodPost, "/api/v1/affiliations", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantType, env.Error.Type)
			assert.False(t, env.Success)
		})
	}
}

func TestListAffiliations(t *testing.T) {
	a := newAPI(t)
	a.seed()

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"eth", "kth", "mit", "ucl"}},
		{query: "?order=id", want: []string{"eth", "kth", "mit", "ucl"}},
		{query: "?order=name", want: []string{"ETH", "KTH", "MIT", "UCL"}},
	}

	for _, tt := range tests {
		t.Run("order"+tt.query, func(t *testing.T) {
			list := decodeData[[]map[string]interface{}](t,
				a.mustDo(http.MethodGet, "/api/v1/affiliations"+tt.query, nil, http.StatusOK))
			var got []string
			for _, item := range list {
				if strings.Contains(tt.query, "name") {
					got = append(got, item["name"].(string))
				} else {
					got = append(got, item["id"].(string))
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}

	rec, env := a.do(http.MethodGet, "/api/v1/affiliations?order=size", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", env.Error.Type)
}

func TestListAffiliationsPaginated(t *testing.T) {
	a := newAPI(t)
	a.seed()

	env := a.mustDo(http.MethodGet, "/api/v1/affiliations?page=2&page_size=3", nil, http.StatusOK)
	list := decodeData[[]map[string]interface{}](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "ucl", list[0]["id"])

	require.NotNil(t, env.Meta)
	require.NotNil(t, env.Meta.Pagination)
	assert.Equal(t, 2, env.Meta.Pagination.Page)
	assert.Equal(t, 4, env.Meta.Pagination.Total)
	assert.Equal(t, 2, env.Meta.Pagination.TotalPages)
	assert.False(t, env.Meta.Pagination.HasNext)
}

func TestNearestAffiliations(t *testing.T) {
	a := newAPI(t)
	a.seed()

	list := decodeData[[]map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/nearest?x=1&y=1", nil, http.StatusOK))
	require.Len(t, list, 3)
	assert.Equal(t, "mit", list[0]["id"])

	rec, _ := a.do(http.MethodGet, "/api/v1/affiliations/nearest?x=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(http.MethodGet, "/api/v1/affiliations/nearest?x=one&y=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicationEndpoints(t *testing.T) {
	a := newAPI(t)
	a.seed()

	pub := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/publications/1", nil, http.StatusOK))
	assert.Equal(t, "Graphs", pub["title"])
	assert.Equal(t, []interface{}{"mit", "eth"}, pub["affiliations"])

	linked := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodPost, "/api/v1/publications/1/affiliations",
			map[string]string{"affiliation_id": "ucl"}, http.StatusOK))
	assert.Equal(t, []interface{}{"mit", "eth", "ucl"}, linked["affiliations"])

	rec, env := a.do(http.MethodPost, "/api/v1/publications/1/affiliations",
		map[string]string{"affiliation_id": "ucl"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Type)

	rec, _ = a.do(http.MethodPost, "/api/v1/publications", map[string]interface{}{
		"id": 3, "title": "Ghost", "year": 2010, "affiliations": []string{"nowhere"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = a.do(http.MethodPost, "/api/v1/publications", map[string]interface{}{
		"id": 4, "title": "Twice", "year": 2010, "affiliations": []string{"mit", "mit"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/v1/publications/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	list := decodeData[[]map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/publications", nil, http.StatusOK))
	assert.Len(t, list, 2)

	rec, _ = a.do(http.MethodDelete, "/api/v1/publications/2", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = a.do(http.MethodGet, "/api/v1/publications/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAffiliationPublications(t *testing.T) {
	a := newAPI(t)
	a.seed()

	all := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/eth/publications", nil, http.StatusOK))
	assert.Equal(t, []interface{}{float64(1), float64(2)}, all["publications"])

	after := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/eth/publications?after=2003", nil, http.StatusOK))
	dated, ok := after["dated"].([]interface{})
	require.True(t, ok)
	require.Len(t, dated, 1)
	assert.Equal(t, float64(2), dated[0].(map[string]interface{})["publication_id"])
}

func TestReferenceEndpoints(t *testing.T) {
	a := newAPI(t)
	a.seed()
	a.mustDo(http.MethodPost, "/api/v1/publications", map[string]interface{}{
		"id": 3, "title": "Survey", "year": 2010, "affiliations": []string{},
	}, http.StatusCreated)

	a.mustDo(http.MethodPut, "/api/v1/publications/2/parent", map[string]uint64{"parent_id": 1}, http.StatusOK)
	a.mustDo(http.MethodPut, "/api/v1/publications/3/parent", map[string]uint64{"parent_id": 1}, http.StatusOK)

	rec, env := a.do(http.MethodPut, "/api/v1/publications/1/parent", map[string]uint64{"parent_id": 3})
	assert.Equal(t, http.StatusConflict, rec.Code, "cycle")
	assert.Equal(t, "CONFLICT", env.Error.Type)

	direct := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/publications/1/references", nil, http.StatusOK))
	assert.Equal(t, "direct", direct["scope"])
	assert.Equal(t, []interface{}{float64(2), float64(3)}, direct["publications"])

	chain := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/publications/3/references?scope=chain", nil, http.StatusOK))
	assert.Equal(t, []interface{}{float64(1)}, chain["publications"])

	common := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/publications/common-parent?a=2&b=3", nil, http.StatusOK))
	assert.Equal(t, float64(1), common["parent"])

	rec, _ = a.do(http.MethodGet, "/api/v1/publications/1/references?scope=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(http.MethodGet, "/api/v1/publications/common-parent?a=2", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConnectionsAndPaths(t *testing.T) {
	a := newAPI(t)
	a.seed()

	all := a.mustDo(http.MethodGet, "/api/v1/connections", nil, http.StatusOK)
	conns := decodeData[[]map[string]interface{}](t, all)
	require.Len(t, conns, 2)
	assert.Equal(t, "eth", conns[0]["affiliation_a"])
	assert.Equal(t, "kth", conns[0]["affiliation_b"])
	assert.Equal(t, "mit", conns[1]["affiliation_b"])

	incident := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/eth/connections", nil, http.StatusOK))
	assert.Equal(t, float64(2), incident["count"])

	unknown := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/affiliations/nobody/connections", nil, http.StatusOK))
	assert.Equal(t, float64(0), unknown["count"])
	assert.Empty(t, unknown["connections"])

	for _, kind := range []string{"any", "fewest-hops", "least-friction", "shortest"} {
		t.Run(kind, func(t *testing.T) {
			path := decodeData[map[string]interface{}](t,
				a.mustDo(http.MethodGet, "/api/v1/paths/"+kind+"?from=mit&to=kth", nil, http.StatusOK))
			assert.Equal(t, true, path["found"])
			assert.Equal(t, float64(2), path["hops"])
			assert.Equal(t, []interface{}{"mit", "eth", "kth"}, path["affiliations"])
		})
	}

	disconnected := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/paths/shortest?from=mit&to=ucl", nil, http.StatusOK))
	assert.Equal(t, false, disconnected["found"])

	overlong := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/paths/any?from="+strings.Repeat("x", 65)+"&to=mit", nil, http.StatusOK))
	assert.Equal(t, false, overlong["found"])

	rec, _ := a.do(http.MethodGet, "/api/v1/paths/any?to=mit", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/v1/paths/scenic?from=mit&to=kth", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndClear(t *testing.T) {
	a := newAPI(t)
	a.seed()

	stats := decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/stats", nil, http.StatusOK))
	assert.Equal(t, float64(4), stats["affiliations"])
	assert.Equal(t, float64(2), stats["publications"])
	assert.Equal(t, float64(2), stats["connections"])
	assert.Equal(t, float64(3), stats["connected_affiliations"])

	rec, _ := a.do(http.MethodDelete, "/api/v1/catalog", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stats = decodeData[map[string]interface{}](t,
		a.mustDo(http.MethodGet, "/api/v1/stats", nil, http.StatusOK))
	assert.Equal(t, float64(0), stats["affiliations"])
	assert.Equal(t, float64(0), stats["connections"])
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	a.seed()
	a.mustDo(http.MethodGet, "/api/v1/paths/any?from=mit&to=kth", nil, http.StatusOK)

	rec, _ := a.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "resttest_path_queries_total")
	assert.Contains(t, body, "resttest_http_requests_total")
	assert.Contains(t, body, `route="/api/v1/paths/{kind}"`)
}

func TestUnknownRoute(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = a.do(http.MethodPatch, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
