package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/turtacn/keyip-mcs/internal/interfaces/http"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/handlers"
	"github.com/turtacn/keyip-mcs/internal/interfaces/http/middleware"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(t *testing.T, checkers ...handlers.HealthChecker) http.Handler {
	t.Helper()
	collector, err := prom.NewMetricsCollector(prom.CollectorConfig{Namespace: "keymcs"}, nil)
	require.NoError(t, err)
	metrics := prom.NewMCSMetrics(collector)
	svc, err := comparison.NewService(comparison.DefaultConfig(), metrics, testutil.NewNopLogger())
	require.NoError(t, err)
	return apihttp.NewRouter(apihttp.RouterConfig{
		Service:     svc,
		Logger:      testutil.NewNopLogger(),
		Version:     "test",
		MaxBodySize: 1 << 20,
		Collector:   collector,
		Metrics:     metrics,
		Logging:     middleware.DefaultLoggingConfig(),
		Checkers:    checkers,
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var er handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
	return er
}

func TestCompareEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/compare", mtypes.CompareRequest{
		Query:  molecule.ToDTO(testutil.Benzene()),
		Target: molecule.ToDTO(testutil.Naphthalene()),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp mtypes.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.MappedAtoms)
	assert.True(t, resp.IsSubgraph)
	assert.Equal(t, "substructure", resp.Strategy)
	assert.InDelta(t, 0.6, resp.Tanimoto, 1e-9)
}

func TestCompareEndpoint_Errors(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/compare", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errors.CodeInvalidParam.String(), decodeError(t, w).Code)
	})

	t.Run("dangling bond", func(t *testing.T) {
		q := molecule.ToDTO(testutil.Benzene())
		q.Bonds = append(q.Bonds, mtypes.BondDTO{From: 0, To: 42, Order: "single"})
		w := do(t, h, http.MethodPost, "/api/v1/compare", mtypes.CompareRequest{
			Query:  q,
			Target: molecule.ToDTO(testutil.Benzene()),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		er := decodeError(t, w)
		assert.Equal(t, errors.ErrCodeAtomIndexOutOfRange.String(), er.Code)
		assert.Contains(t, er.Detail, "bond=6")
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/compare", mtypes.CompareRequest{
			Query:   molecule.ToDTO(testutil.Benzene()),
			Target:  molecule.ToDTO(testutil.Benzene()),
			Options: mtypes.MatchOptionsDTO{Algorithm: "SIMULATED_ANNEALING"},
		})
		assert.Equal(t, errors.ErrCodeUnknownAlgorithm.String(), decodeError(t, w).Code)
	})

	t.Run("body too large", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/compare", `{"query":{"id":"`+strings.Repeat("x", 2<<20)+`"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyzeReactionEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	ethanol := testutil.Chain("ethanol", "C", "C", "O")
	ethane := testutil.Chain("ethane", "C", "C")
	water := testutil.Atoms("water", "O")
	w := do(t, h, http.MethodPost, "/api/v1/reactions/analyze", mtypes.ReactionDTO{
		ID:        "dehydration",
		Reactants: []mtypes.MoleculeDTO{molecule.ToDTO(ethanol)},
		Products:  []mtypes.MoleculeDTO{molecule.ToDTO(ethane), molecule.ToDTO(water)},
		Mapping:   []mtypes.MappingPairDTO{{Query: 0, Target: 0}, {Query: 1, Target: 1}, {Query: 2, Target: 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp mtypes.ReactionAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dehydration", resp.ReactionID)
	assert.False(t, resp.MappingDerived)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, [2]int{1, 2}, resp.Changes[0].Atoms)

	w = do(t, h, http.MethodPost, "/api/v1/reactions/analyze", mtypes.ReactionDTO{ID: "empty"})
	assert.Equal(t, errors.ErrCodeReactionInvalid.String(), decodeError(t, w).Code)
}

func TestBatchEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	w := do(t, h, http.MethodPost, "/api/v1/batch", mtypes.BatchDTO{
		Molecules: []mtypes.MoleculeDTO{
			molecule.ToDTO(testutil.Benzene()),
			molecule.ToDTO(testutil.Naphthalene()),
			molecule.ToDTO(testutil.Cyclohexane()),
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp mtypes.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)

	w = do(t, h, http.MethodPost, "/api/v1/batch", mtypes.BatchDTO{
		Molecules: []mtypes.MoleculeDTO{molecule.ToDTO(testutil.Benzene())},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive"`)
	w = do(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	failing := handlers.CheckFunc{ComponentName: "engine", Fn: func(context.Context) error {
		return stderrors.New("not warmed up")
	}}
	h = newRouter(t, failing)
	w = do(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp handlers.ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not warmed up", resp.Components["engine"].Error)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	do(t, h, http.MethodGet, "/healthz", nil)
	do(t, h, http.MethodGet, "/nowhere", nil)
	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `keymcs_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
}

//Personal.AI order the ending
