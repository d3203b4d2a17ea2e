// Package telegram verifies payloads produced by the Telegram Login Widget.
//
// The scheme is fixed by Telegram: the secret key is SHA256(bot_token) and
// the signature is HMAC-SHA256 over the sorted "key=value" lines of every
// field except hash, joined with newlines.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/volleybot/admin-api/internal/core/ports"
)

// MaxLoginAge is how old a widget payload may be before it is rejected.
// Mirrors the replay window enforced server-side.
const MaxLoginAge = 5 * time.Minute

// LoginVerifier checks widget payload signatures for one bot token.
type LoginVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewLoginVerifier derives the HMAC secret from the bot token.
func NewLoginVerifier(botToken string) *LoginVerifier {
	secret := sha256.Sum256([]byte(botToken))
	return &LoginVerifier{secret: secret[:], now: time.Now}
}

// Verify reports whether the payload's hash matches the signature computed
// from the remaining fields.
func (v *LoginVerifier) Verify(input ports.LoginInput) bool {
	if input.Hash == "" {
		return false
	}
	return hmac.Equal([]byte(v.Sign(input)), []byte(input.Hash))
}

// Fresh reports whether authDate falls within MaxLoginAge of now.
func (v *LoginVerifier) Fresh(authDate int64) bool {
	age := v.now().Unix() - authDate
	return age >= 0 && age <= int64(MaxLoginAge.Seconds())
}

// Sign computes the widget hash over every field except Hash itself. Exposed
// so tests can forge valid payloads against a known token.
func (v *LoginVerifier) Sign(input ports.LoginInput) string {
	fields := map[string]string{
		"id":         strconv.FormatInt(input.ID, 10),
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"username":   input.Username,
		"photo_url":  input.PhotoURL,
		"auth_date":  strconv.FormatInt(input.AuthDate, 10),
	}

	keys := make([]string, 0, len(fields))
	for k, val := range fields {
		if val == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
