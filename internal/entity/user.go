package entity

import (
	"strings"
	"time"
)

// User represents a learner account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	Level        Level
	XP           int64
	Streak       int32
	LastActive   time.Time
	CreatedAt    time.Time
}

// Validate checks required fields before persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidUserEmail
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		return ErrInvalidUserName
	}
	return nil
}

// Normalize ensures defaults & constraints before persistence.
func (u *User) Normalize(now time.Time) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.Level = NormalizeLevel(u.Level)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}
