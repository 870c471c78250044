package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockService struct {
	mock.Mock
}

func (m *mockService) Compare(ctx context.Context, req *mtypes.CompareRequest) (*mtypes.CompareResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*mtypes.CompareResponse)
	return resp, args.Error(1)
}

func (m *mockService) AnalyzeReaction(ctx context.Context, rxn *mtypes.ReactionDTO) (*mtypes.ReactionAnalysisResponse, error) {
	args := m.Called(ctx, rxn)
	resp, _ := args.Get(0).(*mtypes.ReactionAnalysisResponse)
	return resp, args.Error(1)
}

func (m *mockService) BatchCompare(ctx context.Context, batch *mtypes.BatchDTO) (*mtypes.BatchResponse, error) {
	args := m.Called(ctx, batch)
	resp, _ := args.Get(0).(*mtypes.BatchResponse)
	return resp, args.Error(1)
}

func newEngine(svc *mockService) *gin.Engine {
	r := gin.New()
	NewComparisonHandler(svc, testutil.NewNopLogger()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestComparisonHandler_Compare(t *testing.T) {
	svc := &mockService{}
	svc.On("Compare", mock.Anything, mock.MatchedBy(func(req *mtypes.CompareRequest) bool {
		return req.Query.ID == "q" && req.Options.Algorithm == "VF_LIKE"
	})).Return(&mtypes.CompareResponse{QueryID: "q", MappedAtoms: 3}, nil).Once()

	w := post(newEngine(svc), "/api/v1/compare", mtypes.CompareRequest{
		Query:   mtypes.MoleculeDTO{ID: "q"},
		Options: mtypes.MatchOptionsDTO{Algorithm: "VF_LIKE"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"q"`, mustField(t, w.Body.Bytes(), "query_id"))
	svc.AssertExpectations(t)
}

func TestComparisonHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   errors.ErrorCode
		wantMsg    string
	}{
		{
			name:       "client error keeps message and detail",
			err:        errors.New(errors.ErrCodeMoleculeInvalidFormat, "invalid atom").WithDetail("molecule=q atom=0"),
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeMoleculeInvalidFormat,
			wantMsg:    "invalid atom",
		},
		{
			name:       "server error is masked",
			err:        errors.MappingIntegrity("query atom 3 mapped twice"),
			wantStatus: errors.HTTPStatusForCode(errors.ErrCodeMappingIntegrity),
			wantCode:   errors.ErrCodeMappingIntegrity,
			wantMsg:    errors.DefaultMessageForCode(errors.ErrCodeMappingIntegrity),
		},
		{
			name:       "canceled",
			err:        errors.New(errors.ErrCodeCanceled, "comparison canceled"),
			wantStatus: 499,
			wantCode:   errors.ErrCodeCanceled,
			wantMsg:    "comparison canceled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("AnalyzeReaction", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := post(newEngine(svc), "/api/v1/reactions/analyze", mtypes.ReactionDTO{ID: "r"})
			assert.Equal(t, tt.wantStatus, w.Code)
			var er ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
			assert.Equal(t, tt.wantCode.String(), er.Code)
			assert.Equal(t, tt.wantMsg, er.Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestComparisonHandler_BatchValidation(t *testing.T) {
	svc := &mockService{}
	w := post(newEngine(svc), "/api/v1/batch", mtypes.BatchDTO{Molecules: []mtypes.MoleculeDTO{{ID: "only"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "BatchCompare", mock.Anything, mock.Anything)

	svc.On("BatchCompare", mock.Anything, mock.Anything).
		Return(&mtypes.BatchResponse{Results: []mtypes.CompareResponse{{QueryID: "a", TargetID: "b"}}}, nil).Once()
	w = post(newEngine(svc), "/api/v1/batch", mtypes.BatchDTO{Molecules: []mtypes.MoleculeDTO{{ID: "a"}, {ID: "b"}}})
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func mustField(t *testing.T, body []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[key])
}

//Personal.AI order the ending
