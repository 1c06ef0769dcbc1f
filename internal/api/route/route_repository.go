package route

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/cityscout-app/cityscout/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRouteRepository)(nil)

// Repository persists finished itineraries. Saving is append-only; stored
// routes are never updated or deleted.
type Repository interface {
	SaveRoute(ctx context.Context, userID int64, city string, country *string, language types.Language, route types.Itinerary) (*types.SavedRoute, error)
	ListRoutesByUser(ctx context.Context, userID int64) ([]types.SavedRoute, error)
}

// PGXPool is the subset of pgxpool.Pool the repository needs; pgxmock
// provides it in tests.
type PGXPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRouteRepository struct {
	logger *slog.Logger
	pgpool PGXPool
}

func NewRouteRepository(pgpool PGXPool, logger *slog.Logger) *PostgresRouteRepository {
	return &PostgresRouteRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresRouteRepository) SaveRoute(ctx context.Context, userID int64, city string, country *string, language types.Language, route types.Itinerary) (*types.SavedRoute, error) {
	routeJSON, err := json.Marshal(route)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal route: %w", err)
	}

	query := `
        INSERT INTO routes (
            user_id, city, country, language, route_json
        ) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at
    `
	saved := types.SavedRoute{
		UserID:   userID,
		City:     city,
		Country:  country,
		Language: language,
		Route:    route,
	}
	if err = r.pgpool.QueryRow(ctx, query,
		userID, city, country, language, routeJSON,
	).Scan(&saved.ID, &saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert route: %w", err)
	}
	return &saved, nil
}

func (r *PostgresRouteRepository) ListRoutesByUser(ctx context.Context, userID int64) ([]types.SavedRoute, error) {
	query := `
        SELECT id, user_id, city, country, language, route_json, created_at
        FROM routes
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []types.SavedRoute
	for rows.Next() {
		var saved types.SavedRoute
		var routeJSON []byte
		if err := rows.Scan(
			&saved.ID, &saved.UserID, &saved.City, &saved.Country, &saved.Language, &routeJSON, &saved.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		if err := json.Unmarshal(routeJSON, &saved.Route); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored route %s: %w", saved.ID, err)
		}
		routes = append(routes, saved)
	}
	if err := rows.Err(); err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed reading route rows: %w", err)
	}
	return routes, nil
}
