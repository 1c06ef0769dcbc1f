package route

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	generativeAI "github.com/cityscout-app/cityscout/internal/api/generative_ai"
	"github.com/cityscout-app/cityscout/internal/types"
)

const draftTemperature = 0.4

// DraftGenerator turns a trip request into an unresolved itinerary: place
// names and descriptions, no coordinates.
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, req types.TripRequest) (*types.ItineraryDraft, error)
}

// Ensure implementation satisfies the interface
var _ DraftGenerator = (*AIDraftGenerator)(nil)

// AIDraftGenerator generates itinerary drafts through the generation backend
// when one is configured and falls back to a fixed template otherwise, so the
// pipeline stays exercisable without external credentials.
type AIDraftGenerator struct {
	logger  *slog.Logger
	backend generativeAI.Backend
}

func NewAIDraftGenerator(backend generativeAI.Backend, logger *slog.Logger) *AIDraftGenerator {
	return &AIDraftGenerator{
		logger:  logger,
		backend: backend,
	}
}

func (g *AIDraftGenerator) GenerateDraft(ctx context.Context, req types.TripRequest) (*types.ItineraryDraft, error) {
	if !g.backend.Configured() {
		g.logger.InfoContext(ctx, "Generation backend not configured, using template itinerary",
			slog.String("city", req.City),
			slog.String("language", string(req.Language)),
		)
		return templateDraft(req), nil
	}

	system, user := buildRoutePrompts(req)
	txt, err := g.backend.Generate(ctx, system, user, draftTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftUpstream, err)
	}

	cleanTxt := cleanJSONResponse(txt)
	var draft types.ItineraryDraft
	if err := json.Unmarshal([]byte(cleanTxt), &draft); err != nil {
		g.logger.WarnContext(ctx, "Draft response was not valid JSON",
			slog.String("city", req.City),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrDraftParse, err)
	}
	if len(draft.Places) == 0 {
		return nil, fmt.Errorf("%w: draft contains no places", ErrDraftParse)
	}
	return &draft, nil
}

// templateDraft is the deterministic offline itinerary: identical requests
// produce identical drafts.
func templateDraft(req types.TripRequest) *types.ItineraryDraft {
	if req.Language == types.LanguageRU {
		return &types.ItineraryDraft{
			Title:    fmt.Sprintf("Маршрут по %s", req.City),
			Duration: req.Time,
			Places: []types.PlaceDraft{
				{Name: "Главная площадь", Type: "достопримечательность", Time: "45m", Description: "Центр города."},
				{Name: "Музей истории", Type: "музей", Time: "1h", Description: "Классическая экспозиция."},
			},
			EstimatedCost: "до 2000₽",
			Language:      types.LanguageRU,
		}
	}
	return &types.ItineraryDraft{
		Title:    fmt.Sprintf("Route in %s", req.City),
		Duration: req.Time,
		Places: []types.PlaceDraft{
			{Name: "Main Square", Type: "sight", Time: "45m", Description: "City centre."},
			{Name: "History Museum", Type: "museum", Time: "1h", Description: "Classical exhibits."},
		},
		EstimatedCost: "under $25",
		Language:      types.LanguageEN,
	}
}
