// Package service implements the wallet sign-in flow: challenge issuance and
// signature verification ending in a minted session.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foresightlabs/market-api/internal/metrics"
	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	"github.com/foresightlabs/market-api/pkg/auth"
	"github.com/foresightlabs/market-api/pkg/login"
	"github.com/foresightlabs/market-api/pkg/siwe"
	"github.com/foresightlabs/market-api/pkg/user"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidNonce   = errors.New("invalid or expired nonce")
)

// NonceStore is the narrow challenge-persistence interface for the sign-in
// service. Defined here to keep the service decoupled from the store
// implementation.
type NonceStore interface {
	Insert(ctx context.Context, nonce, address string, expiresAt time.Time) error
	Claim(ctx context.Context, nonce, address string, now time.Time) (bool, error)
}

// UserStore is the narrow user-persistence interface for the sign-in service.
type UserStore interface {
	UpsertByAddress(ctx context.Context, address string) (*user.User, error)
}

// Service defines the interface for the sign-in business logic
type Service interface {
	// Challenge issues a single-use nonce bound to the given address.
	Challenge(ctx context.Context, address string) (*login.ChallengeResponse, error)

	// Verify authenticates a signed challenge and mints a session token.
	Verify(ctx context.Context, req *login.VerifyRequest) (*login.VerifyResponse, error)
}

type loginService struct {
	nonces   NonceStore
	users    UserStore
	sessions *auth.SessionManager
	nonceTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new sign-in service
func NewService(
	nonces NonceStore,
	users UserStore,
	sessions *auth.SessionManager,
	nonceTTL time.Duration,
	logger *zap.Logger,
) Service {
	return &loginService{
		nonces:   nonces,
		users:    users,
		sessions: sessions,
		nonceTTL: nonceTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Challenge issues a fresh nonce for address and persists it with an expiry.
// Issuing again for the same address creates an additional challenge; each
// one is independently claimable exactly once.
func (s *loginService) Challenge(ctx context.Context, address string) (*login.ChallengeResponse, error) {
	address = auth.NormalizeAddress(address)
	if !auth.ValidateAddress(address) {
		return nil, apperrors.BadRequestError(ErrInvalidAddress, "invalid address")
	}

	nonce := newNonce()
	expiresAt := s.now().Add(s.nonceTTL)

	if err := s.nonces.Insert(ctx, nonce, address, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	metrics.NoncesIssued.Inc()

	return &login.ChallengeResponse{
		Nonce:     nonce,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify authenticates a signed challenge.
//
// The flow is deliberately ordered so the nonce is consumed only after the
// signature has bound the message to an address:
//  1. Recover the signer from the EIP-191 signature over the literal message
//  2. Extract the nonce from the message body
//  3. Atomically claim the (nonce, signer) challenge; at most one concurrent
//     caller wins
//  4. Upsert the user record for the signer
//  5. Mint the session token
//
// All signature and nonce failures are terminal for the attempt: the client
// restarts from a fresh challenge rather than retrying.
func (s *loginService) Verify(ctx context.Context, req *login.VerifyRequest) (*login.VerifyResponse, error) {
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.Signature) == "" {
		return nil, apperrors.BadRequestError(nil, "message and signature required")
	}

	address, err := auth.RecoverAddress(req.Message, req.Signature)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultInvalidSignature).Inc()
		return nil, apperrors.BadRequestError(err, "invalid signature")
	}

	nonce := siwe.ExtractNonce(req.Message)
	if nonce == "" {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultInvalidNonce).Inc()
		return nil, apperrors.BadRequestError(ErrInvalidNonce, "nonce missing from message")
	}

	claimed, err := s.nonces.Claim(ctx, nonce, address, s.now())
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultError).Inc()
		return nil, fmt.Errorf("failed to claim challenge: %w", err)
	}
	if !claimed {
		metrics.NonceClaims.WithLabelValues(metrics.ClaimOutcomeLost).Inc()
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultInvalidNonce).Inc()
		return nil, apperrors.BadRequestError(ErrInvalidNonce, "invalid or expired nonce")
	}
	metrics.NonceClaims.WithLabelValues(metrics.ClaimOutcomeWon).Inc()

	u, err := s.users.UpsertByAddress(ctx, address)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultError).Inc()
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.sessions.Issue(u.ID, u.Address)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginResultError).Inc()
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues(metrics.LoginResultSuccess).Inc()
	metrics.SessionsIssued.Inc()

	return &login.VerifyResponse{
		Token: token,
		User:  u,
	}, nil
}

// newNonce generates an alphanumeric nonce. UUIDv4 with hyphens stripped
// keeps it URL- and message-safe.
func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
