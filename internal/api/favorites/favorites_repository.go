package favorites

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityscout-app/cityscout/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresFavoritesRepository)(nil)

// Repository defines persistence for favorite places.
type Repository interface {
	ListByUser(ctx context.Context, userID int64, city string) ([]types.Favorite, error)
	Create(ctx context.Context, userID int64, params types.CreateFavoriteParams) (*types.Favorite, error)
}

type PostgresFavoritesRepository struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewFavoritesRepository(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresFavoritesRepository {
	return &PostgresFavoritesRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// ListByUser returns the user's favorites, newest first, optionally filtered
// by city.
func (r *PostgresFavoritesRepository) ListByUser(ctx context.Context, userID int64, city string) ([]types.Favorite, error) {
	query := `
        SELECT id, user_id, city, name, type, lat, lng, address, created_at
        FROM favorites
        WHERE user_id = $1 AND ($2 = '' OR city = $2)
        ORDER BY created_at DESC
    `
	rows, err := r.pgpool.Query(ctx, query, userID, city)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []types.Favorite
	for rows.Next() {
		var fav types.Favorite
		if err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.City, &fav.Name, &fav.Type, &fav.Lat, &fav.Lng, &fav.Address, &fav.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading favorite rows: %w", err)
	}
	return favorites, nil
}

func (r *PostgresFavoritesRepository) Create(ctx context.Context, userID int64, params types.CreateFavoriteParams) (*types.Favorite, error) {
	query := `
        INSERT INTO favorites (user_id, city, name, type, lat, lng, address)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, user_id, city, name, type, lat, lng, address, created_at
    `
	var fav types.Favorite
	if err := r.pgpool.QueryRow(ctx, query,
		userID, params.City, params.Name, params.Type, params.Lat, params.Lng, params.Address,
	).Scan(
		&fav.ID, &fav.UserID, &fav.City, &fav.Name, &fav.Type, &fav.Lat, &fav.Lng, &fav.Address, &fav.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}
	return &fav, nil
}
