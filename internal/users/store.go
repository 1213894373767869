package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// Store persists username/password-hash pairs. Lookup absence is
// reported as ErrNotFound, distinct from a storage failure.
type Store interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Create rejects a duplicate username with ErrUsernameTaken.
	Create(ctx context.Context, u *User) error
}
