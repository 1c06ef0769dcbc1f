package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cityscout-app/cityscout/internal/api/geo"
	"github.com/cityscout-app/cityscout/internal/types"
)

var (
	// ErrInvalidRequest marks a malformed trip request; it never reaches the
	// pipeline interior.
	ErrInvalidRequest = errors.New("invalid trip request")
	// ErrDraftUpstream marks a generation backend call failure. Fatal: no
	// itinerary without a draft.
	ErrDraftUpstream = errors.New("draft generation backend failed")
	// ErrDraftParse marks a backend response that was not valid itinerary
	// JSON after cleaning. Fatal.
	ErrDraftParse = errors.New("draft response is not valid itinerary JSON")
	// ErrPersistence marks a history write failure, distinct from generation
	// errors so callers can tell "no itinerary" from "itinerary not saved".
	ErrPersistence = errors.New("failed to save route")
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for route operations.
type Service interface {
	GenerateRoute(ctx context.Context, userID int64, req types.TripRequest) (*types.SavedRoute, error)
	GetRouteHistory(ctx context.Context, userID int64) ([]types.SavedRoute, error)
}

// ServiceImpl runs the route pipeline: validate, draft, resolve each place,
// aggregate distance, persist. Draft and persistence failures are fatal;
// resolution failures only leave the affected place without coordinates.
type ServiceImpl struct {
	logger    *slog.Logger
	generator DraftGenerator
	resolver  geo.PlaceResolver
	repo      Repository
}

func NewService(generator DraftGenerator, resolver geo.PlaceResolver, repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		resolver:  resolver,
		repo:      repo,
	}
}

func validateRequest(userID int64, req types.TripRequest) error {
	if userID == 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if req.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidRequest)
	}
	if !req.Language.Valid() {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidRequest, req.Language)
	}
	return nil
}

// GenerateRoute runs the full pipeline for one request. Places are resolved
// strictly in visiting order, one at a time, to respect geocoder rate limits
// and keep distance accumulation deterministic. No stage is retried.
func (s *ServiceImpl) GenerateRoute(ctx context.Context, userID int64, req types.TripRequest) (*types.SavedRoute, error) {
	ctx, span := otel.Tracer("RouteService").Start(ctx, "GenerateRoute")
	defer span.End()
	span.SetAttributes(attribute.String("city", req.City), attribute.String("language", string(req.Language)))

	l := s.logger.With(
		slog.String("method", "GenerateRoute"),
		slog.Int64("user_id", userID),
		slog.String("city", req.City),
	)

	if err := validateRequest(userID, req); err != nil {
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	draft, err := s.generator.GenerateDraft(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Draft generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Draft generation failed")
		return nil, err
	}
	l.InfoContext(ctx, "Draft generated", slog.Int("places", len(draft.Places)))

	// Resolution never drops or reorders entries: the output slice has
	// exactly one entry per draft place, in draft order.
	resolved := make([]types.ResolvedPlace, 0, len(draft.Places))
	for _, place := range draft.Places {
		enriched := types.ResolvedPlace{PlaceDraft: place}
		if loc := s.resolver.ResolvePlace(ctx, place.Name, req.City); loc != nil {
			enriched.Coords = &types.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
			address := loc.Address
			enriched.Address = &address
		}
		resolved = append(resolved, enriched)
	}

	// Author-supplied distances are never overridden.
	total := draft.TotalDistance
	if total == "" {
		total = formatDistance(totalDistanceKm(resolved))
	}

	itinerary := types.Itinerary{
		Title:         draft.Title,
		Duration:      draft.Duration,
		Places:        resolved,
		EstimatedCost: draft.EstimatedCost,
		TotalDistance: total,
		Language:      req.Language,
	}

	var country *string
	if req.Country != "" {
		country = &req.Country
	}
	saved, err := s.repo.SaveRoute(ctx, userID, req.City, country, req.Language, itinerary)
	if err != nil {
		l.ErrorContext(ctx, "Route persistence failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Route persistence failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	l.InfoContext(ctx, "Route generated",
		slog.String("route_id", saved.ID.String()),
		slog.String("total_distance", total),
	)
	span.SetStatus(codes.Ok, "Route generated")
	return saved, nil
}

// GetRouteHistory lists the user's saved routes, newest first.
func (s *ServiceImpl) GetRouteHistory(ctx context.Context, userID int64) ([]types.SavedRoute, error) {
	ctx, span := otel.Tracer("RouteService").Start(ctx, "GetRouteHistory")
	defer span.End()

	routes, err := s.repo.ListRoutesByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "History fetch failed")
		return nil, fmt.Errorf("error fetching route history: %w", err)
	}
	span.SetStatus(codes.Ok, "History returned")
	return routes, nil
}
