package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	"github.com/foresightlabs/market-api/pkg/user"
	"github.com/foresightlabs/market-api/pkg/userstore"
)

type userStoreMock struct {
	upsertFn      func(ctx context.Context, address string) (*user.User, error)
	getByIDFn     func(ctx context.Context, id int64) (*user.User, error)
	getByAddrFn   func(ctx context.Context, address string) (*user.User, error)
	setUsernameFn func(ctx context.Context, id int64, username string) error
}

func (m *userStoreMock) UpsertByAddress(ctx context.Context, address string) (*user.User, error) {
	if m.upsertFn == nil {
		panic("unexpected call to UpsertByAddress")
	}
	return m.upsertFn(ctx, address)
}

func (m *userStoreMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.getByIDFn == nil {
		panic("unexpected call to GetByID")
	}
	return m.getByIDFn(ctx, id)
}

func (m *userStoreMock) GetByAddress(ctx context.Context, address string) (*user.User, error) {
	if m.getByAddrFn == nil {
		panic("unexpected call to GetByAddress")
	}
	return m.getByAddrFn(ctx, address)
}

func (m *userStoreMock) SetUsername(ctx context.Context, id int64, username string) error {
	if m.setUsernameFn == nil {
		panic("unexpected call to SetUsername")
	}
	return m.setUsernameFn(ctx, id, username)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	ctx := context.Background()

	store := &userStoreMock{
		getByIDFn: func(context.Context, int64) (*user.User, error) {
			return nil, userstore.ErrUserNotFound
		},
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.GetProfile(ctx, 99)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestProfileService_UpdateProfile_InvalidUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&userStoreMock{}, zap.NewNop())

	for _, username := range []string{"", "ab", string(make([]byte, 65))} {
		_, err := svc.UpdateProfile(ctx, 1, username)
		if err == nil {
			t.Fatalf("UpdateProfile(%q): expected error, got nil", username)
		}
		if !apperrors.Is(err, apperrors.CategoryDataError) {
			t.Fatalf("UpdateProfile(%q): expected CategoryDataError, got %v", username, err)
		}
	}
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	ctx := context.Background()
	username := "trader42"

	store := &userStoreMock{
		setUsernameFn: func(_ context.Context, id int64, got string) error {
			if id != 7 || got != username {
				t.Fatalf("unexpected SetUsername(%d, %q)", id, got)
			}
			return nil
		},
		getByIDFn: func(_ context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Address: "0xabc", Username: &username}, nil
		},
	}
	svc := NewService(store, zap.NewNop())

	u, err := svc.UpdateProfile(ctx, 7, username)
	if err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}
	if u.Username == nil || *u.Username != username {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestProfileService_UpdateProfile_StoreError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("db unavailable")

	store := &userStoreMock{
		setUsernameFn: func(context.Context, int64, string) error {
			return storeErr
		},
	}
	svc := NewService(store, zap.NewNop())

	_, err := svc.UpdateProfile(ctx, 7, "trader42")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to be wrapped, got %v", err)
	}
}
