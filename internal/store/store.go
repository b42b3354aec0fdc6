package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on unique-constraint violations.
	ErrAlreadyExists = errors.New("already exists")
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore provides persistence for user accounts. Chat state (rooms,
// membership, messages) is deliberately not persisted.
type UserStore interface {
	// CreateUser inserts a new account.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*User, error)

	// GetUserByUsername returns the account for a username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByEmail returns the account for an email address.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// Store is the full persistence surface of the server.
type Store interface {
	UserStore
	Close() error
}
