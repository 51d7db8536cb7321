// Package service implements the authenticated user's profile operations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	"github.com/foresightlabs/market-api/pkg/user"
	"github.com/foresightlabs/market-api/pkg/userstore"
)

// Service defines the interface for the profile business logic
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*user.User, error)
	UpdateProfile(ctx context.Context, userID int64, username string) (*user.User, error)
}

type profileService struct {
	store    userstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a new profile service
func NewService(store userstore.Store, logger *zap.Logger) Service {
	return &profileService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, username string) (*user.User, error) {
	if err := s.validate.Var(username, "required,min=3,max=64"); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid username")
	}

	if err := s.store.SetUsername(ctx, userID, username); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "user not found")
		}
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	s.logger.Info("profile updated",
		zap.Int64("user_id", userID),
		zap.String("username", username),
	)
	return u, nil
}
