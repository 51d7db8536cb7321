package noncestore

import (
	"time"

	"github.com/uptrace/bun"
)

// ChallengeDao is a data access object that maps directly to the
// 'auth_challenges' table in PostgreSQL.
type ChallengeDao struct {
	bun.BaseModel `bun:"table:auth_challenges,alias:ac"`
	Nonce         string    `bun:"nonce,pk,type:varchar(64)"`
	Address       string    `bun:"address,notnull,type:varchar(42)"`
	ExpiresAt     time.Time `bun:"expires_at,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}
