package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cityscout-app/cityscout/internal/types"
)

// ErrInvalidInitData marks initData that failed signature verification or
// could not be parsed.
var ErrInvalidInitData = errors.New("invalid telegram init data")

// VerifyInitData checks the Telegram WebApp initData signature against the
// bot token and returns the embedded user. The scheme follows the Mini Apps
// documentation: the secret key is HMAC-SHA256 of the bot token keyed with
// "WebAppData"; the signature covers all fields except hash, sorted by key
// and joined as key=value lines.
func VerifyInitData(initData, botToken string) (*types.TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	givenHash := values.Get("hash")
	if givenHash == "" {
		return nil, fmt.Errorf("%w: no hash field", ErrInvalidInitData)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secretKey := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	calcHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(calcHash), []byte(givenHash)) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	userStr := values.Get("user")
	if userStr == "" {
		return nil, fmt.Errorf("%w: no user field", ErrInvalidInitData)
	}
	var user types.TelegramUser
	if err := json.Unmarshal([]byte(userStr), &user); err != nil {
		return nil, fmt.Errorf("%w: malformed user field: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrInvalidInitData)
	}
	return &user, nil
}
