package service

import (
	"context"
	"time"

	"github.com/foresightlabs/market-api/pkg/login"
	"github.com/foresightlabs/market-api/pkg/user"
)

// Hand-written mocks for the service's narrow store interfaces. Each method
// delegates to a settable func field; unset methods panic to surface
// unexpected calls.

type nonceStoreMock struct {
	insertFn func(ctx context.Context, nonce, address string, expiresAt time.Time) error
	claimFn  func(ctx context.Context, nonce, address string, now time.Time) (bool, error)
}

func (m *nonceStoreMock) Insert(ctx context.Context, nonce, address string, expiresAt time.Time) error {
	if m.insertFn == nil {
		panic("unexpected call to Insert")
	}
	return m.insertFn(ctx, nonce, address, expiresAt)
}

func (m *nonceStoreMock) Claim(ctx context.Context, nonce, address string, now time.Time) (bool, error) {
	if m.claimFn == nil {
		panic("unexpected call to Claim")
	}
	return m.claimFn(ctx, nonce, address, now)
}

type userStoreMock struct {
	upsertFn func(ctx context.Context, address string) (*user.User, error)
}

func (m *userStoreMock) UpsertByAddress(ctx context.Context, address string) (*user.User, error) {
	if m.upsertFn == nil {
		panic("unexpected call to UpsertByAddress")
	}
	return m.upsertFn(ctx, address)
}

type serviceMock struct {
	challengeFn func(ctx context.Context, address string) (*login.ChallengeResponse, error)
	verifyFn    func(ctx context.Context, req *login.VerifyRequest) (*login.VerifyResponse, error)
}

func (m *serviceMock) Challenge(ctx context.Context, address string) (*login.ChallengeResponse, error) {
	if m.challengeFn == nil {
		panic("unexpected call to Challenge")
	}
	return m.challengeFn(ctx, address)
}

func (m *serviceMock) Verify(ctx context.Context, req *login.VerifyRequest) (*login.VerifyResponse, error) {
	if m.verifyFn == nil {
		panic("unexpected call to Verify")
	}
	return m.verifyFn(ctx, req)
}
