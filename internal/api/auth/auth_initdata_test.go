package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "1234567890:AAF-test-bot-token"

// signInitData builds a valid initData query string the way the Telegram
// client does: sorted key=value lines signed with the WebAppData-derived key.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func TestVerifyInitData(t *testing.T) {
	validFields := map[string]string{
		"auth_date": "1724900000",
		"query_id":  "AAH9mFEeAAAAAP2YUR4rT7Dx",
		"user":      `{"id":99281932,"first_name":"Andrei","username":"andrei_dev","language_code":"en"}`,
	}

	t.Run("valid signature", func(t *testing.T) {
		initData := signInitData(t, testBotToken, validFields)

		user, err := VerifyInitData(initData, testBotToken)
		require.NoError(t, err)
		assert.Equal(t, int64(99281932), user.ID)
		assert.Equal(t, "Andrei", user.FirstName)
		assert.Equal(t, "andrei_dev", user.Username)
	})

	t.Run("tampered field", func(t *testing.T) {
		initData := signInitData(t, testBotToken, validFields)
		tampered := strings.Replace(initData, "auth_date=1724900000", "auth_date=1724999999", 1)

		_, err := VerifyInitData(tampered, testBotToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("wrong bot token", func(t *testing.T) {
		initData := signInitData(t, "0000000000:other-token", validFields)

		_, err := VerifyInitData(initData, testBotToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("missing hash", func(t *testing.T) {
		_, err := VerifyInitData("auth_date=1724900000&user=%7B%22id%22%3A1%7D", testBotToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("missing user field", func(t *testing.T) {
		fields := map[string]string{"auth_date": "1724900000"}
		initData := signInitData(t, testBotToken, fields)

		_, err := VerifyInitData(initData, testBotToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("user without id", func(t *testing.T) {
		fields := map[string]string{
			"auth_date": "1724900000",
			"user":      `{"first_name":"Ghost"}`,
		}
		initData := signInitData(t, testBotToken, fields)

		_, err := VerifyInitData(initData, testBotToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})
}
