package domain

import "time"

// Principal models the authenticated operator of the admin console.
// The identity source of truth is Telegram; TelegramID is the only stable key.
type Principal struct {
	TelegramID int64     `json:"telegram_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name,omitempty"`
	Username   string    `json:"username,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	LastLogin  time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// DisplayName returns the username when set, otherwise the first name.
func (p *Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.FirstName
}
