package types

import "time"

// User matches the users table structure. The ID is the Telegram account id
// carried over from initData verification.
type User struct {
	ID        int64     `json:"id"`
	Username  *string   `json:"username,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	Language  *string   `json:"language,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TelegramUser is the user object embedded in Telegram WebApp initData.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}
