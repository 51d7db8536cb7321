package apidb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/noncestore"
	mghelper "github.com/foresightlabs/market-api/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating auth_challenges table...")
		if err := mghelper.CreateSchema(ctx, db, &noncestore.ChallengeDao{}); err != nil {
			return err
		}
		// Expired-challenge purges scan on expiry.
		return mghelper.CreateModelIndexes(ctx, db, &noncestore.ChallengeDao{}, "expires_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping auth_challenges table...")
		return mghelper.DropTables(ctx, db, &noncestore.ChallengeDao{})
	})
}
