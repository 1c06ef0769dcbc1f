package plan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/cityscout-app/cityscout/internal/api/generative_ai"
	"github.com/cityscout-app/cityscout/internal/types"
)

// MockForecaster is a mock implementation of Forecaster
type MockForecaster struct {
	mock.Mock
}

func (m *MockForecaster) DailyForecast(ctx context.Context, lat, lng float64) ([]json.RawMessage, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func setupPlanServiceTest() (*ServiceImpl, *MockForecaster) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	weather := new(MockForecaster)
	return NewService(weather, generativeAI.UnconfiguredBackend(), logger), weather
}

func testPlanRequest() types.PlanRequest {
	return types.PlanRequest{
		City:     "Paris",
		Coords:   &types.Coordinates{Lat: 48.8566, Lng: 2.3522},
		Dates:    types.DateRange{From: "2026-09-01", To: "2026-09-04"},
		Language: types.LanguageEN,
	}
}

func TestServiceImpl_GetRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("missing coords", func(t *testing.T) {
		service, _ := setupPlanServiceTest()
		req := testPlanRequest()
		req.Coords = nil

		_, err := service.GetRecommendations(ctx, req)
		require.Error(t, err)
	})

	t.Run("forecast failure is fatal", func(t *testing.T) {
		service, weather := setupPlanServiceTest()
		req := testPlanRequest()
		weather.On("DailyForecast", ctx, req.Coords.Lat, req.Coords.Lng).
			Return(nil, errors.New("service unavailable")).Once()

		_, err := service.GetRecommendations(ctx, req)
		require.Error(t, err)
	})

	t.Run("english fallback tips without backend", func(t *testing.T) {
		service, weather := setupPlanServiceTest()
		req := testPlanRequest()
		weather.On("DailyForecast", ctx, req.Coords.Lat, req.Coords.Lng).
			Return([]json.RawMessage{json.RawMessage(`{"temp":{"day":21}}`)}, nil).Once()

		tips, err := service.GetRecommendations(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Check the weather forecast for the selected dates.", tips.Weather.Summary)
		assert.Contains(t, tips.Clothing, "Comfortable shoes")
		assert.Contains(t, tips.Tips, "Download offline maps")
	})

	t.Run("russian fallback tips without backend", func(t *testing.T) {
		service, weather := setupPlanServiceTest()
		req := testPlanRequest()
		req.Language = types.LanguageRU
		weather.On("DailyForecast", ctx, req.Coords.Lat, req.Coords.Lng).
			Return([]json.RawMessage{}, nil).Once()

		tips, err := service.GetRecommendations(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Посмотрите прогноз погоды на выбранные даты.", tips.Weather.Summary)
		assert.Contains(t, tips.Clothing, "Удобная обувь")
	})
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"tips":[]}`, cleanJSONResponse("```json\n{\"tips\":[]}\n```"))
	assert.Equal(t, `{"tips":[]}`, cleanJSONResponse("```\n{\"tips\":[]}\n```"))
	assert.Equal(t, `{"tips":[]}`, cleanJSONResponse(`  {"tips":[]}  `))
}

func TestBuildTipsPrompts(t *testing.T) {
	t.Run("english", func(t *testing.T) {
		req := testPlanRequest()
		system, user := buildTipsPrompts(req, `[{"temp":21}]`)
		assert.Equal(t, tipsSystemPromptEN, system)
		assert.Contains(t, user, "City: Paris")
		assert.Contains(t, user, "2026-09-01")
		assert.Contains(t, user, "Preferences: {}")
	})

	t.Run("russian with prefs", func(t *testing.T) {
		req := testPlanRequest()
		req.Language = types.LanguageRU
		req.Prefs = json.RawMessage(`{"museums":true}`)
		system, user := buildTipsPrompts(req, `[]`)
		assert.Equal(t, tipsSystemPromptRU, system)
		assert.Contains(t, user, "Город: Paris")
		assert.Contains(t, user, `{"museums":true}`)
	})
}

func TestWeatherClient_DailyForecast(t *testing.T) {
	ctx := context.Background()

	t.Run("parses daily entries and query params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "48.8566", q.Get("lat"))
			assert.Equal(t, "2.3522", q.Get("lon"))
			assert.Equal(t, "minutely", q.Get("exclude"))
			assert.Equal(t, "metric", q.Get("units"))
			assert.Equal(t, "test-key", q.Get("appid"))
			w.Write([]byte(`{"daily":[{"temp":{"day":21}},{"temp":{"day":19}}]}`))
		}))
		defer server.Close()

		client := NewWeatherClient(server.URL, "test-key")
		daily, err := client.DailyForecast(ctx, 48.8566, 2.3522)
		require.NoError(t, err)
		assert.Len(t, daily, 2)
	})

	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":401}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewWeatherClient(server.URL, "bad-key")
		_, err := client.DailyForecast(ctx, 48.8566, 2.3522)
		require.Error(t, err)
	})
}
