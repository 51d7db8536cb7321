package apidb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/eventstore"
	mghelper "github.com/foresightlabs/market-api/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating event_markets table...")
		if err := mghelper.CreateSchema(ctx, db, &eventstore.MarketDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &eventstore.MarketDao{}, "event_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping event_markets table...")
		return mghelper.DropTables(ctx, db, &eventstore.MarketDao{})
	})
}
