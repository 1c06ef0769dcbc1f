package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appMiddleware "github.com/cityscout-app/cityscout/app/middleware"
	"github.com/cityscout-app/cityscout/internal/types"
)

const accessTokenTTL = 24 * time.Hour

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service verifies Telegram WebApp initData and establishes the user.
type Service interface {
	VerifyInitData(ctx context.Context, initData string) (string, *types.User, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	repo     Repository
	botToken string
}

func NewService(repo Repository, botToken string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		repo:     repo,
		botToken: botToken,
	}
}

// VerifyInitData checks the initData signature, upserts the user and returns
// a signed access token for subsequent API calls.
func (s *ServiceImpl) VerifyInitData(ctx context.Context, initData string) (string, *types.User, error) {
	tgUser, err := VerifyInitData(initData, s.botToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.UpsertUser(ctx, *tgUser)
	if err != nil {
		return "", nil, fmt.Errorf("error establishing user: %w", err)
	}

	token, err := s.issueAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing access token: %w", err)
	}

	s.logger.InfoContext(ctx, "User verified", slog.Int64("user_id", user.ID))
	return token, user, nil
}

func (s *ServiceImpl) issueAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := &appMiddleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	if user.Username != nil {
		claims.Username = *user.Username
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(appMiddleware.JwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
