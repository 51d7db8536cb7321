package noncestore

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the challenge store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, nonce, address string, expiresAt time.Time) error {
	dao := &ChallengeDao{
		Nonce:     nonce,
		Address:   address,
		ExpiresAt: expiresAt,
	}
	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}
	return nil
}

// Claim relies on the row-level atomicity of a single conditional DELETE.
// There is deliberately no read-then-delete: two concurrent claims race on
// the same DELETE and Postgres lets exactly one of them remove the row.
func (s *pgStore) Claim(ctx context.Context, nonce, address string, now time.Time) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*ChallengeDao)(nil)).
		Where("nonce = ?", nonce).
		Where("address = ?", address).
		Where("expires_at > ?", now).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim challenge: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (s *pgStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*ChallengeDao)(nil)).
		Where("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired challenges: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
