package service

import (
	"context"

	"github.com/foresightlabs/market-api/pkg/event"
	"github.com/foresightlabs/market-api/pkg/moderation"
)

// Hand-written mocks. Each method delegates to a settable func field; unset
// methods panic to surface unexpected calls.

type storeMock struct {
	listFn   func(ctx context.Context) ([]*event.Event, error)
	getFn    func(ctx context.Context, id int64) (*event.Event, error)
	createFn func(ctx context.Context, evt *event.Event, markets []*event.Market) (*event.Event, error)
	updateFn func(ctx context.Context, marketID int64, update event.StatsUpdate) error
}

func (m *storeMock) ListEvents(ctx context.Context) ([]*event.Event, error) {
	if m.listFn == nil {
		panic("unexpected call to ListEvents")
	}
	return m.listFn(ctx)
}

func (m *storeMock) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	if m.getFn == nil {
		panic("unexpected call to GetEvent")
	}
	return m.getFn(ctx, id)
}

func (m *storeMock) CreateEvent(ctx context.Context, evt *event.Event, markets []*event.Market) (*event.Event, error) {
	if m.createFn == nil {
		panic("unexpected call to CreateEvent")
	}
	return m.createFn(ctx, evt, markets)
}

func (m *storeMock) UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error {
	if m.updateFn == nil {
		panic("unexpected call to UpdateMarketStats")
	}
	return m.updateFn(ctx, marketID, update)
}

type classifierMock struct {
	moderateFn func(ctx context.Context, input moderation.Input) (*moderation.Result, error)
}

func (m *classifierMock) Moderate(ctx context.Context, input moderation.Input) (*moderation.Result, error) {
	if m.moderateFn == nil {
		panic("unexpected call to Moderate")
	}
	return m.moderateFn(ctx, input)
}

type serviceMock struct {
	listFn   func(ctx context.Context) ([]*event.Event, error)
	getFn    func(ctx context.Context, id int64) (*event.Event, error)
	createFn func(ctx context.Context, req *event.CreateRequest) (*event.Event, error)
	updateFn func(ctx context.Context, marketID int64, update event.StatsUpdate) error
}

func (m *serviceMock) ListEvents(ctx context.Context) ([]*event.Event, error) {
	if m.listFn == nil {
		panic("unexpected call to ListEvents")
	}
	return m.listFn(ctx)
}

func (m *serviceMock) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	if m.getFn == nil {
		panic("unexpected call to GetEvent")
	}
	return m.getFn(ctx, id)
}

func (m *serviceMock) CreateEvent(ctx context.Context, req *event.CreateRequest) (*event.Event, error) {
	if m.createFn == nil {
		panic("unexpected call to CreateEvent")
	}
	return m.createFn(ctx, req)
}

func (m *serviceMock) UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error {
	if m.updateFn == nil {
		panic("unexpected call to UpdateMarketStats")
	}
	return m.updateFn(ctx, marketID, update)
}
