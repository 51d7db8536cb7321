// Package eventstore persists events and their markets.
package eventstore

import (
	"context"
	"errors"

	"github.com/foresightlabs/market-api/pkg/event"
)

// ErrEventNotFound is returned when an event lookup finds no matching record.
var ErrEventNotFound = errors.New("event not found")

// ErrMarketNotFound is returned when a market update targets no existing row.
var ErrMarketNotFound = errors.New("market not found")

// Store defines the interface for event and market persistence
type Store interface {
	// ListEvents returns all events newest-first with their markets attached
	// and each event's traded volume summed over its markets.
	ListEvents(ctx context.Context) ([]*event.Event, error)

	// GetEvent returns one event with its markets.
	GetEvent(ctx context.Context, id int64) (*event.Event, error)

	// CreateEvent inserts the event and its markets in one transaction.
	// New markets start at last_price 0.5, zero volume, and no on-chain
	// address. If any market insert fails the event row does not survive.
	CreateEvent(ctx context.Context, evt *event.Event, markets []*event.Market) (*event.Event, error)

	// UpdateMarketStats applies a partial stats update to one market. The
	// traded delta is added in a single UPDATE so concurrent settlement
	// callbacks cannot lose each other's contribution.
	UpdateMarketStats(ctx context.Context, marketID int64, update event.StatsUpdate) error
}
