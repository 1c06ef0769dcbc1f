package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	generativeAI "github.com/cityscout-app/cityscout/internal/api/generative_ai"
	"github.com/cityscout-app/cityscout/internal/types"
)

const (
	tipsTemperature = 0.2
	forecastDays    = 7
)

const (
	tipsSystemPromptEN = `You are a travel and weather expert. Return JSON:
{ "weather": { "summary": "..." }, "clothing": ["..."], "bestTimes": ["..."], "tips": ["..."] }.`

	tipsSystemPromptRU = `Ты — эксперт по путешествиям и погоде. Верни JSON:
{ "weather": { "summary": "..." }, "clothing": ["..."], "bestTimes": ["..."], "tips": ["..."] }.`
)

// Forecaster defines the outbound weather contract.
type Forecaster interface {
	DailyForecast(ctx context.Context, lat, lng float64) ([]json.RawMessage, error)
}

// Ensure implementation satisfies the interface
var _ Forecaster = (*WeatherClient)(nil)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service produces pre-trip recommendations from the weather forecast.
type Service interface {
	GetRecommendations(ctx context.Context, req types.PlanRequest) (*types.TripTips, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	weather Forecaster
	backend generativeAI.Backend
}

func NewService(weather Forecaster, backend generativeAI.Backend, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		weather: weather,
		backend: backend,
	}
}

// GetRecommendations fetches a forecast digest and asks the model for
// clothing, timing and general advice. Without a configured backend it
// returns fixed language-appropriate defaults.
func (s *ServiceImpl) GetRecommendations(ctx context.Context, req types.PlanRequest) (*types.TripTips, error) {
	if req.Coords == nil {
		return nil, fmt.Errorf("coords required")
	}

	daily, err := s.weather.DailyForecast(ctx, req.Coords.Lat, req.Coords.Lng)
	if err != nil {
		return nil, fmt.Errorf("weather forecast failed: %w", err)
	}
	if len(daily) > forecastDays {
		daily = daily[:forecastDays]
	}

	if !s.backend.Configured() {
		s.logger.InfoContext(ctx, "Generation backend not configured, using default tips",
			slog.String("city", req.City),
		)
		return fallbackTips(req.Language), nil
	}

	digest, err := json.Marshal(daily)
	if err != nil {
		return nil, fmt.Errorf("failed to encode forecast digest: %w", err)
	}

	system, user := buildTipsPrompts(req, string(digest))
	txt, err := s.backend.Generate(ctx, system, user, tipsTemperature)
	if err != nil {
		return nil, fmt.Errorf("tips generation failed: %w", err)
	}

	cleanTxt := cleanJSONResponse(txt)
	var tips types.TripTips
	if err := json.Unmarshal([]byte(cleanTxt), &tips); err != nil {
		return nil, fmt.Errorf("tips response is not valid JSON: %w", err)
	}
	return &tips, nil
}

func buildTipsPrompts(req types.PlanRequest, digest string) (system, user string) {
	prefs := "{}"
	if len(req.Prefs) > 0 {
		prefs = string(req.Prefs)
	}

	if req.Language == types.LanguageRU {
		user = fmt.Sprintf("Город: %s. Даты: %s—%s. Предпочтения: %s. Прогноз: %s.",
			req.City, req.Dates.From, req.Dates.To, prefs, digest)
		return tipsSystemPromptRU, user
	}
	user = fmt.Sprintf("City: %s. Dates: %s-%s. Preferences: %s. Forecast: %s.",
		req.City, req.Dates.From, req.Dates.To, prefs, digest)
	return tipsSystemPromptEN, user
}

func fallbackTips(language types.Language) *types.TripTips {
	if language == types.LanguageRU {
		return &types.TripTips{
			Weather:   types.WeatherSummary{Summary: "Посмотрите прогноз погоды на выбранные даты."},
			Clothing:  []string{"Удобная обувь", "Небольшая куртка"},
			BestTimes: []string{"10:00-12:00 — меньше туристов"},
			Tips:      []string{"Возьмите повербанк", "Скачайте офлайн-карты"},
		}
	}
	return &types.TripTips{
		Weather:   types.WeatherSummary{Summary: "Check the weather forecast for the selected dates."},
		Clothing:  []string{"Comfortable shoes", "Light jacket"},
		BestTimes: []string{"10:00-12:00 — fewer tourists"},
		Tips:      []string{"Bring a power bank", "Download offline maps"},
	}
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	return strings.TrimSpace(response)
}
