// Package userstore persists wallet user records.
package userstore

import (
	"context"
	"errors"

	"github.com/foresightlabs/market-api/pkg/user"
)

// ErrUserNotFound is returned when a user lookup finds no matching record.
var ErrUserNotFound = errors.New("user not found")

// Store defines the interface for user data persistence
type Store interface {
	// UpsertByAddress creates the user record for address if it does not
	// exist and returns the stored record either way. Idempotent: repeated
	// calls for one address return the same id.
	UpsertByAddress(ctx context.Context, address string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByAddress(ctx context.Context, address string) (*user.User, error)
	SetUsername(ctx context.Context, id int64, username string) error
}
