package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	"github.com/foresightlabs/market-api/pkg/event"
	"github.com/foresightlabs/market-api/pkg/eventstore"
	"github.com/foresightlabs/market-api/pkg/moderation"
)

func allowAll() *classifierMock {
	return &classifierMock{
		moderateFn: func(context.Context, moderation.Input) (*moderation.Result, error) {
			return &moderation.Result{
				Decision:  moderation.DecisionAllow,
				Category:  moderation.CategoryNone,
				Rationale: "fine",
			}, nil
		},
	}
}

func TestEventService_CreateEvent_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&storeMock{}, allowAll(), zap.NewNop())

	for name, req := range map[string]*event.CreateRequest{
		"missing name": {Description: "desc"},
		"bad url":      {Name: "Election 2028", ImageURL: "not a url"},
		"empty market": {Name: "Election 2028", Markets: []event.NewMarketRequest{{}}},
	} {
		_, err := svc.CreateEvent(ctx, req)
		if err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
		if !apperrors.Is(err, apperrors.CategoryDataError) {
			t.Fatalf("%s: expected CategoryDataError, got %v", name, err)
		}
	}
}

func TestEventService_CreateEvent_Allowed(t *testing.T) {
	ctx := context.Background()

	store := &storeMock{
		createFn: func(_ context.Context, evt *event.Event, markets []*event.Market) (*event.Event, error) {
			if evt.Name != "Election 2028" {
				t.Fatalf("unexpected event name %q", evt.Name)
			}
			if len(markets) != 2 {
				t.Fatalf("expected 2 markets, got %d", len(markets))
			}
			evt.ID = 1
			evt.Markets = markets
			return evt, nil
		},
	}

	var moderated moderation.Input
	classifier := &classifierMock{
		moderateFn: func(_ context.Context, input moderation.Input) (*moderation.Result, error) {
			moderated = input
			return &moderation.Result{Decision: moderation.DecisionAllow, Category: moderation.CategoryNone, Rationale: "fine"}, nil
		},
	}

	svc := NewService(store, classifier, zap.NewNop())

	created, err := svc.CreateEvent(ctx, &event.CreateRequest{
		Name:        "Election 2028",
		Description: "Who wins?",
		Markets: []event.NewMarketRequest{
			{Name: "Candidate A"},
			{Name: "Candidate B"},
		},
	})
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if moderated.Title != "Election 2028" || len(moderated.MarketTitles) != 2 {
		t.Fatalf("classifier saw wrong input: %+v", moderated)
	}
}

func TestEventService_CreateEvent_Blocked(t *testing.T) {
	ctx := context.Background()

	for _, decision := range []moderation.Decision{moderation.DecisionBlock, moderation.DecisionReview} {
		classifier := &classifierMock{
			moderateFn: func(context.Context, moderation.Input) (*moderation.Result, error) {
				return &moderation.Result{Decision: decision, Category: moderation.CategoryViolence, Rationale: "nope"}, nil
			},
		}

		// The store must never be reached for a rejected submission.
		svc := NewService(&storeMock{}, classifier, zap.NewNop())

		_, err := svc.CreateEvent(ctx, &event.CreateRequest{Name: "Bad event"})
		if err == nil {
			t.Fatalf("decision %s: expected error, got nil", decision)
		}
		if !errors.Is(err, ErrContentNotAllowed) {
			t.Fatalf("decision %s: expected ErrContentNotAllowed, got %v", decision, err)
		}
		if !apperrors.Is(err, apperrors.CategoryUnprocessable) {
			t.Fatalf("decision %s: expected CategoryUnprocessable, got %v", decision, err)
		}
	}
}

func TestEventService_CreateEvent_ClassifierUnavailable(t *testing.T) {
	ctx := context.Background()

	classifier := &classifierMock{
		moderateFn: func(context.Context, moderation.Input) (*moderation.Result, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := NewService(&storeMock{}, classifier, zap.NewNop())

	_, err := svc.CreateEvent(ctx, &event.CreateRequest{Name: "Some event"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.Is(err, apperrors.CategoryDependencyFailure) {
		t.Fatalf("expected CategoryDependencyFailure, got %v", err)
	}
}

func TestEventService_CreateEvent_NoModerator(t *testing.T) {
	ctx := context.Background()

	store := &storeMock{
		createFn: func(_ context.Context, evt *event.Event, _ []*event.Market) (*event.Event, error) {
			evt.ID = 5
			return evt, nil
		},
	}
	svc := NewService(store, nil, zap.NewNop())

	created, err := svc.CreateEvent(ctx, &event.CreateRequest{Name: "Unmoderated event"})
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("expected id 5, got %d", created.ID)
	}
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	ctx := context.Background()

	store := &storeMock{
		getFn: func(context.Context, int64) (*event.Event, error) {
			return nil, eventstore.ErrEventNotFound
		},
	}
	svc := NewService(store, nil, zap.NewNop())

	_, err := svc.GetEvent(ctx, 99)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestEventService_UpdateMarketStats_EmptyUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&storeMock{}, nil, zap.NewNop())

	err := svc.UpdateMarketStats(ctx, 1, event.StatsUpdate{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected CategoryDataError, got %v", err)
	}
}

func TestEventService_UpdateMarketStats_NotFound(t *testing.T) {
	ctx := context.Background()

	store := &storeMock{
		updateFn: func(context.Context, int64, event.StatsUpdate) error {
			return eventstore.ErrMarketNotFound
		},
	}
	svc := NewService(store, nil, zap.NewNop())

	price := decimal.RequireFromString("0.42")
	err := svc.UpdateMarketStats(ctx, 404, event.StatsUpdate{LastPrice: &price})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestEventService_UpdateMarketStats_PassesUpdateThrough(t *testing.T) {
	ctx := context.Background()

	price := decimal.RequireFromString("0.42")
	delta := decimal.RequireFromString("100.5")

	store := &storeMock{
		updateFn: func(_ context.Context, marketID int64, update event.StatsUpdate) error {
			if marketID != 7 {
				t.Fatalf("expected market id 7, got %d", marketID)
			}
			if update.LastPrice == nil || !update.LastPrice.Equal(price) {
				t.Fatalf("unexpected last price %v", update.LastPrice)
			}
			if update.TradedDelta == nil || !update.TradedDelta.Equal(delta) {
				t.Fatalf("unexpected traded delta %v", update.TradedDelta)
			}
			return nil
		},
	}
	svc := NewService(store, nil, zap.NewNop())

	if err := svc.UpdateMarketStats(ctx, 7, event.StatsUpdate{LastPrice: &price, TradedDelta: &delta}); err != nil {
		t.Fatalf("UpdateMarketStats() failed: %v", err)
	}
}
