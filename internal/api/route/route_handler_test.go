package route

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/cityscout-app/cityscout/app/middleware"
	"github.com/cityscout-app/cityscout/app/observability/metrics"
	"github.com/cityscout-app/cityscout/internal/types"
)

// MockRouteService is a mock implementation of Service
type MockRouteService struct {
	mock.Mock
}

func (m *MockRouteService) GenerateRoute(ctx context.Context, userID int64, req types.TripRequest) (*types.SavedRoute, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SavedRoute), args.Error(1)
}

func (m *MockRouteService) GetRouteHistory(ctx context.Context, userID int64) ([]types.SavedRoute, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.SavedRoute), args.Error(1)
}

func setupRouteHandlerTest() (*Handler, *MockRouteService) {
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := new(MockRouteService)
	return NewRouteHandler(service, metrics.Get(), logger), service
}

func authedRequest(method, target string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), appMiddleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestHandler_GenerateRoute(t *testing.T) {
	userID := int64(42)
	body, _ := json.Marshal(types.TripRequest{City: "Paris", Time: "4h", Language: types.LanguageEN})

	t.Run("success", func(t *testing.T) {
		handler, service := setupRouteHandlerTest()
		saved := &types.SavedRoute{ID: uuid.New(), UserID: userID, City: "Paris"}
		service.On("GenerateRoute", mock.Anything, userID, mock.Anything).Return(saved, nil).Once()

		rr := httptest.NewRecorder()
		handler.GenerateRoute(rr, authedRequest(http.MethodPost, "/api/v1/routes", body, userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got types.SavedRoute
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, saved.ID, got.ID)
		service.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler, service := setupRouteHandlerTest()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/routes", bytes.NewReader(body))
		handler.GenerateRoute(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		service.AssertNotCalled(t, "GenerateRoute", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler, _ := setupRouteHandlerTest()

		rr := httptest.NewRecorder()
		handler.GenerateRoute(rr, authedRequest(http.MethodPost, "/api/v1/routes", []byte("{not json"), userID))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
			{"draft parse", ErrDraftParse, http.StatusBadGateway},
			{"draft upstream", ErrDraftUpstream, http.StatusBadGateway},
			{"persistence", ErrPersistence, http.StatusInternalServerError},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler, service := setupRouteHandlerTest()
				service.On("GenerateRoute", mock.Anything, userID, mock.Anything).Return(nil, tt.err).Once()

				rr := httptest.NewRecorder()
				handler.GenerateRoute(rr, authedRequest(http.MethodPost, "/api/v1/routes", body, userID))

				assert.Equal(t, tt.wantStatus, rr.Code)
			})
		}
	})
}

func TestHandler_GetRouteHistory(t *testing.T) {
	userID := int64(42)

	t.Run("empty history returns empty array", func(t *testing.T) {
		handler, service := setupRouteHandlerTest()
		service.On("GetRouteHistory", mock.Anything, userID).Return(nil, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetRouteHistory(rr, authedRequest(http.MethodGet, "/api/v1/routes", nil, userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("returns routes", func(t *testing.T) {
		handler, service := setupRouteHandlerTest()
		routes := []types.SavedRoute{{ID: uuid.New(), UserID: userID, City: "Paris"}}
		service.On("GetRouteHistory", mock.Anything, userID).Return(routes, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetRouteHistory(rr, authedRequest(http.MethodGet, "/api/v1/routes", nil, userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []types.SavedRoute
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
	})
}
