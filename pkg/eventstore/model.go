package eventstore

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/event"
)

// EventDao is a data access object that maps directly to the 'events' table in PostgreSQL.
type EventDao struct {
	bun.BaseModel `bun:"table:events,alias:e"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Name          string    `bun:"name,notnull,type:varchar(200)"`
	Description   string    `bun:"description,type:text"`
	ImageURL      string    `bun:"image_url,type:varchar(2048)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// MarketDao is a data access object that maps directly to the 'event_markets' table in PostgreSQL.
type MarketDao struct {
	bun.BaseModel `bun:"table:event_markets,alias:m"`
	ID            int64            `bun:"id,pk,autoincrement"`
	EventID       int64            `bun:"event_id,notnull"`
	Name          string           `bun:"name,notnull,type:varchar(200)"`
	IsResolved    bool             `bun:"is_resolved,notnull,default:false"`
	OpenUntil     *time.Time       `bun:"open_until"`
	CreatedAt     time.Time        `bun:"created_at,nullzero,default:current_timestamp"`
	LastPrice     *decimal.Decimal `bun:"last_price,type:numeric(5,4)"`
	TradedVolume  decimal.Decimal  `bun:"traded_volume,notnull,type:numeric(38,18),default:0"`
	HexAddress    *string          `bun:"hex_address,type:varchar(42)"`
}

func toEventDao(evt *event.Event) *EventDao {
	return &EventDao{
		ID:          evt.ID,
		Name:        evt.Name,
		Description: evt.Description,
		ImageURL:    evt.ImageURL,
	}
}

func toEvent(dao *EventDao) *event.Event {
	return &event.Event{
		ID:          dao.ID,
		Name:        dao.Name,
		Description: dao.Description,
		ImageURL:    dao.ImageURL,
		CreatedAt:   dao.CreatedAt,
		Markets:     []*event.Market{},
	}
}

func toMarketDao(m *event.Market) *MarketDao {
	return &MarketDao{
		ID:           m.ID,
		EventID:      m.EventID,
		Name:         m.Name,
		IsResolved:   m.IsResolved,
		OpenUntil:    m.OpenUntil,
		LastPrice:    m.LastPrice,
		TradedVolume: m.TradedVolume,
		HexAddress:   m.HexAddress,
	}
}

func toMarket(dao *MarketDao) *event.Market {
	return &event.Market{
		ID:           dao.ID,
		EventID:      dao.EventID,
		Name:         dao.Name,
		IsResolved:   dao.IsResolved,
		OpenUntil:    dao.OpenUntil,
		CreatedAt:    dao.CreatedAt,
		LastPrice:    dao.LastPrice,
		TradedVolume: dao.TradedVolume,
		HexAddress:   dao.HexAddress,
	}
}
