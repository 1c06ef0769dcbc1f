package route

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscout-app/cityscout/internal/types"
)

func setupRouteRepositoryTest(t *testing.T) (*PostgresRouteRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouteRepository(mockPool, logger), mockPool
}

func testItinerary() types.Itinerary {
	return types.Itinerary{
		Title:    "Route in Paris",
		Duration: "4h",
		Places: []types.ResolvedPlace{
			{
				PlaceDraft: types.PlaceDraft{Name: "Louvre", Type: "museum", Time: "2h", Description: "World famous museum."},
				Coords:     &types.Coordinates{Lat: 48.8606, Lng: 2.3376},
			},
		},
		EstimatedCost: "under $25",
		TotalDistance: "3.2 km",
		Language:      types.LanguageEN,
	}
}

func TestPostgresRouteRepository_SaveRoute(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	country := "France"

	t.Run("success", func(t *testing.T) {
		repo, mockPool := setupRouteRepositoryTest(t)
		itinerary := testItinerary()
		routeJSON, err := json.Marshal(itinerary)
		require.NoError(t, err)

		routeID := uuid.New()
		createdAt := time.Now()
		mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO routes")).
			WithArgs(userID, "Paris", &country, types.LanguageEN, routeJSON).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(routeID, createdAt))

		saved, err := repo.SaveRoute(ctx, userID, "Paris", &country, types.LanguageEN, itinerary)
		require.NoError(t, err)
		assert.Equal(t, routeID, saved.ID)
		assert.Equal(t, userID, saved.UserID)
		assert.Equal(t, "Paris", saved.City)
		assert.Equal(t, itinerary, saved.Route)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("insert error", func(t *testing.T) {
		repo, mockPool := setupRouteRepositoryTest(t)
		itinerary := testItinerary()
		routeJSON, err := json.Marshal(itinerary)
		require.NoError(t, err)

		mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO routes")).
			WithArgs(userID, "Paris", (*string)(nil), types.LanguageEN, routeJSON).
			WillReturnError(assert.AnError)

		_, err = repo.SaveRoute(ctx, userID, "Paris", nil, types.LanguageEN, itinerary)
		require.Error(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPostgresRouteRepository_ListRoutesByUser(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)

	t.Run("returns stored routes with decoded itineraries", func(t *testing.T) {
		repo, mockPool := setupRouteRepositoryTest(t)
		itinerary := testItinerary()
		routeJSON, err := json.Marshal(itinerary)
		require.NoError(t, err)

		routeID := uuid.New()
		createdAt := time.Now()
		mockPool.ExpectQuery(regexp.QuoteMeta("FROM routes")).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "city", "country", "language", "route_json", "created_at"}).
				AddRow(routeID, userID, "Paris", (*string)(nil), types.LanguageEN, routeJSON, createdAt))

		routes, err := repo.ListRoutesByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, routes, 1)
		assert.Equal(t, routeID, routes[0].ID)
		assert.Equal(t, itinerary, routes[0].Route)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		repo, mockPool := setupRouteRepositoryTest(t)
		mockPool.ExpectQuery(regexp.QuoteMeta("FROM routes")).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "city", "country", "language", "route_json", "created_at"}))

		routes, err := repo.ListRoutesByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, routes)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("corrupt stored json", func(t *testing.T) {
		repo, mockPool := setupRouteRepositoryTest(t)
		mockPool.ExpectQuery(regexp.QuoteMeta("FROM routes")).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "city", "country", "language", "route_json", "created_at"}).
				AddRow(uuid.New(), userID, "Paris", (*string)(nil), types.LanguageEN, []byte("not json"), time.Now()))

		_, err := repo.ListRoutesByUser(ctx, userID)
		require.Error(t, err)
	})
}
