package domain

import (
	"errors"
	"time"
)

// ErrEmailTaken is returned by storage when the email unique constraint rejects a write.
var ErrEmailTaken = errors.New("email already in use")

// User is the domain model for a registered account.
type User struct {
	UserID    int64
	Email     string
	Name      string
	Password  string
	CreatedAt time.Time
}
