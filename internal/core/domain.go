package core

import (
	"strings"
	"time"
)

type (
	// User is an account record. The numeric ID doubles as the identity
	// value clients send on every scoped request.
	User struct {
		ID           int64     `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
	}

	Expense struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Date        time.Time `json:"date"`
	}

	Income struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}
)

// Validate checks presence of registration fields. No format rules beyond
// non-emptiness are enforced.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" || u.PasswordHash == "" {
		return ErrMissingFields
	}
	return nil
}
