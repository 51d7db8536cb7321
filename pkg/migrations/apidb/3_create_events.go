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
		log.Println("creating events table...")
		return mghelper.CreateSchema(ctx, db, &eventstore.EventDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping events table...")
		return mghelper.DropTables(ctx, db, &eventstore.EventDao{})
	})
}
