package geo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cityscout-app/cityscout/internal/types"
)

// onLocationRadiusKm is the radius within which a user counts as being in
// the city.
const onLocationRadiusKm = 10

// Geocoder defines the outbound geocoding contract.
type Geocoder interface {
	SearchCity(ctx context.Context, query string) ([]types.CityMatch, error)
	GeocodePlaceInCity(ctx context.Context, place, city string) (*types.ResolvedLocation, error)
}

// Ensure implementation satisfies the interface
var _ Geocoder = (*GeocoderClient)(nil)

// PlaceResolver is the narrow contract the route pipeline consumes: resolve
// one place within a city, absorbing every failure into an unresolved result.
type PlaceResolver interface {
	ResolvePlace(ctx context.Context, place, city string) *types.ResolvedLocation
}

// Service defines the business logic contract for geo operations.
type Service interface {
	PlaceResolver
	SearchCities(ctx context.Context, query string) ([]types.CityMatch, error)
	CheckLocation(city, user types.Coordinates) (onLocation bool, distanceKm float64)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger   *slog.Logger
	geocoder Geocoder
	cache    *cache.Cache
}

func NewService(geocoder Geocoder, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
		cache:    cache.New(24*time.Hour, 1*time.Hour),
	}
}

// SearchCities geocodes a city query into candidate localities.
func (s *ServiceImpl) SearchCities(ctx context.Context, query string) ([]types.CityMatch, error) {
	matches, err := s.geocoder.SearchCity(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("city search failed: %w", err)
	}
	return matches, nil
}

// CheckLocation reports whether the user is within the on-location radius of
// the city centre and the distance between them.
func (s *ServiceImpl) CheckLocation(city, user types.Coordinates) (bool, float64) {
	distanceKm := DistanceKm(city, user)
	return distanceKm <= onLocationRadiusKm, distanceKm
}

// ResolvePlace resolves a place name within a city to coordinates and an
// address. Zero matches, transport failures and malformed responses all
// collapse into an unresolved (nil) result so that one bad place can never
// abort itinerary generation.
func (s *ServiceImpl) ResolvePlace(ctx context.Context, place, city string) *types.ResolvedLocation {
	cacheKey := fmt.Sprintf("geocode:%s:%s", city, place)
	if cached, found := s.cache.Get(cacheKey); found {
		if loc, ok := cached.(*types.ResolvedLocation); ok {
			return loc
		}
	}

	loc, err := s.geocoder.GeocodePlaceInCity(ctx, place, city)
	if err != nil {
		s.logger.WarnContext(ctx, "Place resolution failed, leaving place unresolved",
			slog.String("place", place),
			slog.String("city", city),
			slog.Any("error", err),
		)
		return nil
	}
	if loc == nil {
		s.logger.DebugContext(ctx, "Geocoder returned no match",
			slog.String("place", place),
			slog.String("city", city),
		)
		return nil
	}

	s.cache.Set(cacheKey, loc, cache.DefaultExpiration)
	return loc
}
