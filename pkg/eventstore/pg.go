package eventstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/event"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the event store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) ListEvents(ctx context.Context) ([]*event.Event, error) {
	var eventDaos []EventDao
	err := s.db.NewSelect().
		Model(&eventDaos).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if len(eventDaos) == 0 {
		return []*event.Event{}, nil
	}

	ids := make([]int64, len(eventDaos))
	for i := range eventDaos {
		ids[i] = eventDaos[i].ID
	}

	var marketDaos []MarketDao
	err = s.db.NewSelect().
		Model(&marketDaos).
		Where("event_id IN (?)", bun.In(ids)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}

	byEventID := make(map[int64][]*event.Market)
	for i := range marketDaos {
		m := toMarket(&marketDaos[i])
		byEventID[m.EventID] = append(byEventID[m.EventID], m)
	}

	events := make([]*event.Event, len(eventDaos))
	for i := range eventDaos {
		evt := toEvent(&eventDaos[i])
		volume := decimal.Zero
		for _, m := range byEventID[evt.ID] {
			evt.Markets = append(evt.Markets, m)
			volume = volume.Add(m.TradedVolume)
		}
		evt.TradedVolume = volume
		events[i] = evt
	}
	return events, nil
}

func (s *pgStore) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	dao := new(EventDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("e.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var marketDaos []MarketDao
	err = s.db.NewSelect().
		Model(&marketDaos).
		Where("event_id = ?", id).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get event markets: %w", err)
	}

	evt := toEvent(dao)
	volume := decimal.Zero
	for i := range marketDaos {
		m := toMarket(&marketDaos[i])
		evt.Markets = append(evt.Markets, m)
		volume = volume.Add(m.TradedVolume)
	}
	evt.TradedVolume = volume
	return evt, nil
}

func (s *pgStore) CreateEvent(ctx context.Context, evt *event.Event, markets []*event.Market) (*event.Event, error) {
	var created *event.Event

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		eventDao := toEventDao(evt)
		if _, err := tx.NewInsert().
			Model(eventDao).
			Returning("id, created_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		created = toEvent(eventDao)

		if len(markets) == 0 {
			created.TradedVolume = decimal.Zero
			return nil
		}

		marketDaos := make([]MarketDao, len(markets))
		for i, m := range markets {
			dao := toMarketDao(m)
			dao.EventID = eventDao.ID
			marketDaos[i] = *dao
		}

		if _, err := tx.NewInsert().
			Model(&marketDaos).
			Returning("id, created_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create markets: %w", err)
		}

		volume := decimal.Zero
		for i := range marketDaos {
			m := toMarket(&marketDaos[i])
			created.Markets = append(created.Markets, m)
			volume = volume.Add(m.TradedVolume)
		}
		created.TradedVolume = volume
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMarketStats applies price, volume delta, and address changes in one
// UPDATE. The volume delta is computed inside the statement, not read back
// and re-written, so concurrent settlement callbacks both land.
func (s *pgStore) UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error {
	if update.IsEmpty() {
		return fmt.Errorf("empty market stats update")
	}

	q := s.db.NewUpdate().
		Model((*MarketDao)(nil)).
		Where("id = ?", marketID)

	if update.LastPrice != nil {
		q = q.Set("last_price = ?", *update.LastPrice)
	}
	if update.TradedDelta != nil {
		q = q.Set("traded_volume = traded_volume + ?", *update.TradedDelta)
	}
	if update.HexAddress != nil {
		q = q.Set("hex_address = ?", *update.HexAddress)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update market stats: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMarketNotFound
	}
	return nil
}
