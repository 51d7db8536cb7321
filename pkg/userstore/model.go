package userstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/foresightlabs/market-api/pkg/user"
)

// UserDao is a data access object that maps directly to the 'users' table in PostgreSQL.
type UserDao struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Address       string    `bun:"address,unique,notnull,type:varchar(42)"`
	Username      *string   `bun:"username,type:varchar(64)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

func toUser(dao *UserDao) *user.User {
	return &user.User{
		ID:        dao.ID,
		Address:   dao.Address,
		Username:  dao.Username,
		CreatedAt: dao.CreatedAt,
	}
}
