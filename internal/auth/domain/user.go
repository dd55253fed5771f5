package domain

import "time"

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"` // always stored lowercase
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never return password material in JSON
	PasswordSalt string    `json:"-"`
	MicrosoftID  *string   `json:"-" gorm:"uniqueIndex"` // nil for password-only accounts
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the account can authenticate with a password.
// Accounts created through the OAuth callback carry no password material.
func (u *User) HasPassword() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}
