package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Claims are the custom claims carried in the access token issued after
// Telegram initData verification.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"usr,omitempty"`
	jwt.RegisteredClaims
}

// JwtSecretKey signs access tokens. Loaded from the environment at startup;
// the default only exists so local runs without a .env file do not panic.
var JwtSecretKey = []byte(envOr("JWT_SECRET", "dev-only-insecure-secret"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
