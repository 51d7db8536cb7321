// Package service implements the event catalogue business logic: listing,
// creation behind a moderation gate, and market stat settlement.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/foresightlabs/market-api/internal/metrics"
	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	"github.com/foresightlabs/market-api/pkg/event"
	"github.com/foresightlabs/market-api/pkg/eventstore"
	"github.com/foresightlabs/market-api/pkg/moderation"
)

var ErrContentNotAllowed = errors.New("content not allowed")

// Service defines the interface for the event business logic
type Service interface {
	ListEvents(ctx context.Context) ([]*event.Event, error)
	GetEvent(ctx context.Context, id int64) (*event.Event, error)

	// CreateEvent validates and moderates the submission, then persists the
	// event with its markets.
	CreateEvent(ctx context.Context, req *event.CreateRequest) (*event.Event, error)

	// UpdateMarketStats applies a partial stats update to a market.
	UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error
}

type eventService struct {
	store     eventstore.Store
	moderator moderation.Classifier
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewService creates a new event service. A nil moderator disables the
// moderation gate; submissions are then persisted unexamined.
func NewService(store eventstore.Store, moderator moderation.Classifier, logger *zap.Logger) Service {
	return &eventService{
		store:     store,
		moderator: moderator,
		validate:  validator.New(),
		logger:    logger,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*event.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	evt, err := s.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, eventstore.ErrEventNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "event not found")
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return evt, nil
}

// CreateEvent persists a new event after validation and moderation.
//
// Anything other than an explicit ALLOW verdict rejects the submission:
// borderline content is not published pending review, it is bounced back to
// the author.
func (s *eventService) CreateEvent(ctx context.Context, req *event.CreateRequest) (*event.Event, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid event payload")
	}

	if s.moderator != nil {
		verdict, err := s.moderate(ctx, req)
		if err != nil {
			return nil, err
		}
		if verdict.Decision != moderation.DecisionAllow {
			s.logger.Warn("event submission rejected by moderation",
				zap.String("decision", string(verdict.Decision)),
				zap.String("category", string(verdict.Category)),
				zap.String("rationale", verdict.Rationale),
			)
			return nil, apperrors.UnprocessableError(ErrContentNotAllowed, "content_not_allowed")
		}
	}

	evt := &event.Event{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	// Fresh markets open at even odds.
	initialPrice := decimal.NewFromFloat(0.5)

	markets := make([]*event.Market, len(req.Markets))
	for i, m := range req.Markets {
		markets[i] = &event.Market{
			Name:      m.Name,
			OpenUntil: m.OpenUntil,
			LastPrice: &initialPrice,
		}
	}

	created, err := s.store.CreateEvent(ctx, evt, markets)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (s *eventService) UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error {
	if update.IsEmpty() {
		return apperrors.BadRequestError(nil, "no fields to update")
	}

	if err := s.store.UpdateMarketStats(ctx, marketID, update); err != nil {
		if errors.Is(err, eventstore.ErrMarketNotFound) {
			return apperrors.ResourceNotFoundError(err, "market not found")
		}
		return fmt.Errorf("failed to update market stats: %w", err)
	}
	return nil
}

func (s *eventService) moderate(ctx context.Context, req *event.CreateRequest) (*moderation.Result, error) {
	marketTitles := make([]string, len(req.Markets))
	for i, m := range req.Markets {
		marketTitles[i] = m.Name
	}

	verdict, err := s.moderator.Moderate(ctx, moderation.Input{
		Title:        req.Name,
		Description:  req.Description,
		MarketTitles: marketTitles,
	})
	if err != nil {
		return nil, apperrors.DependencyError(err, "moderation unavailable")
	}

	metrics.ModerationDecisions.WithLabelValues(string(verdict.Decision)).Inc()
	return verdict, nil
}
