package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/user"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the user store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// UpsertByAddress inserts the user row if absent and returns the stored row.
// The conflict target is the unique address column; the no-op update on
// conflict lets RETURNING yield the existing row's id, so two concurrent
// sign-ins for one address observe the same record.
func (s *pgStore) UpsertByAddress(ctx context.Context, address string) (*user.User, error) {
	dao := &UserDao{Address: address}

	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (address) DO UPDATE").
		Set("address = EXCLUDED.address").
		Returning("id, address, username, created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return toUser(dao), nil
}

func (s *pgStore) GetByID(ctx context.Context, id int64) (*user.User, error) {
	dao := new(UserDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(dao), nil
}

func (s *pgStore) GetByAddress(ctx context.Context, address string) (*user.User, error) {
	dao := new(UserDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("address = ?", address).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(dao), nil
}

func (s *pgStore) SetUsername(ctx context.Context, id int64, username string) error {
	res, err := s.db.NewUpdate().
		Model((*UserDao)(nil)).
		Set("username = ?", username).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set username: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
