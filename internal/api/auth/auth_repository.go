package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityscout-app/cityscout/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresUserRepository)(nil)

// Repository defines user persistence for the auth flow.
type Repository interface {
	UpsertUser(ctx context.Context, tgUser types.TelegramUser) (*types.User, error)
}

type PostgresUserRepository struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewUserRepository(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// UpsertUser creates or refreshes the user row keyed by Telegram id.
func (r *PostgresUserRepository) UpsertUser(ctx context.Context, tgUser types.TelegramUser) (*types.User, error) {
	query := `
        INSERT INTO users (id, username, first_name, language)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET
            username = EXCLUDED.username,
            first_name = EXCLUDED.first_name,
            language = EXCLUDED.language
        RETURNING id, username, first_name, language, created_at
    `
	var username, firstName, language *string
	if tgUser.Username != "" {
		username = &tgUser.Username
	}
	if tgUser.FirstName != "" {
		firstName = &tgUser.FirstName
	}
	if tgUser.LanguageCode != "" {
		language = &tgUser.LanguageCode
	}

	var user types.User
	if err := r.pgpool.QueryRow(ctx, query, tgUser.ID, username, firstName, language).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.Language, &user.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, nil
}
