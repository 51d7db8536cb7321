// Package event holds the domain model for events and their binary-outcome
// markets.
package event

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event groups one or more binary-outcome markets under a display name.
type Event struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	Markets      []*Market       `json:"markets"`
	TradedVolume decimal.Decimal `json:"traded_volume"`
}

// Market is a single binary-outcome market belonging to an event.
// LastPrice is a probability-like quantity in [0,1] when present.
// TradedVolume only grows outside of explicit corrective updates.
type Market struct {
	ID           int64            `json:"id"`
	EventID      int64            `json:"event_id"`
	Name         string           `json:"name"`
	IsResolved   bool             `json:"is_resolved"`
	OpenUntil    *time.Time       `json:"open_until"`
	CreatedAt    time.Time        `json:"created_at"`
	LastPrice    *decimal.Decimal `json:"last_price"`
	TradedVolume decimal.Decimal  `json:"traded_volume"`
	HexAddress   *string          `json:"hex_address"`
}

// CreateRequest is the payload for declaring a new event and its markets.
type CreateRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=200"`
	Description string             `json:"description" validate:"max=4000"`
	ImageURL    string             `json:"image_url" validate:"omitempty,url"`
	Markets     []NewMarketRequest `json:"markets" validate:"dive"`
}

// NewMarketRequest declares one market of a new event.
type NewMarketRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=200"`
	OpenUntil *time.Time `json:"open_until"`
}

// StatsUpdate is a partial update applied to a market after trade settlement.
// TradedDelta is added to the cumulative volume; LastPrice replaces the
// observed price. At least one field must be set.
type StatsUpdate struct {
	LastPrice   *decimal.Decimal
	TradedDelta *decimal.Decimal
	HexAddress  *string
}

// IsEmpty reports whether the update carries no fields.
func (u StatsUpdate) IsEmpty() bool {
	return u.LastPrice == nil && u.TradedDelta == nil && u.HexAddress == nil
}
