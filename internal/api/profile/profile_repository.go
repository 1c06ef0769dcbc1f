package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityscout-app/cityscout/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresProfileRepository)(nil)

// Repository defines persistence for travel preference profiles.
type Repository interface {
	GetByUser(ctx context.Context, userID int64) (*types.Profile, error)
	Upsert(ctx context.Context, userID int64, params types.UpsertProfileParams) (*types.Profile, error)
}

type PostgresProfileRepository struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewProfileRepository(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// GetByUser returns the user's profile or nil when none was saved yet.
func (r *PostgresProfileRepository) GetByUser(ctx context.Context, userID int64) (*types.Profile, error) {
	query := `
        SELECT user_id, food, activities, daily_budget, travel_style, updated_at
        FROM profiles
        WHERE user_id = $1
    `
	profile, err := scanProfile(r.pgpool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// Upsert creates or updates the profile; nil params keep the stored value.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, userID int64, params types.UpsertProfileParams) (*types.Profile, error) {
	var food, activities []byte
	var err error
	if params.Food != nil {
		if food, err = json.Marshal(params.Food); err != nil {
			return nil, fmt.Errorf("failed to marshal food preferences: %w", err)
		}
	}
	if params.Activities != nil {
		if activities, err = json.Marshal(params.Activities); err != nil {
			return nil, fmt.Errorf("failed to marshal activity preferences: %w", err)
		}
	}

	query := `
        INSERT INTO profiles (user_id, food, activities, daily_budget, travel_style, updated_at)
        VALUES ($1, $2, $3, $4, $5, now())
        ON CONFLICT (user_id) DO UPDATE SET
            food = COALESCE(EXCLUDED.food, profiles.food),
            activities = COALESCE(EXCLUDED.activities, profiles.activities),
            daily_budget = COALESCE(EXCLUDED.daily_budget, profiles.daily_budget),
            travel_style = COALESCE(EXCLUDED.travel_style, profiles.travel_style),
            updated_at = now()
        RETURNING user_id, food, activities, daily_budget, travel_style, updated_at
    `
	profile, err := scanProfile(r.pgpool.QueryRow(ctx, query, userID, food, activities, params.DailyBudget, params.TravelStyle))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (*types.Profile, error) {
	var profile types.Profile
	var food, activities []byte
	if err := row.Scan(&profile.UserID, &food, &activities, &profile.DailyBudget, &profile.TravelStyle, &profile.UpdatedAt); err != nil {
		return nil, err
	}
	if len(food) > 0 {
		if err := json.Unmarshal(food, &profile.Food); err != nil {
			return nil, fmt.Errorf("malformed food preferences: %w", err)
		}
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &profile.Activities); err != nil {
			return nil, fmt.Errorf("malformed activity preferences: %w", err)
		}
	}
	return &profile, nil
}
