package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserCard is a user's owned instance of a character, with progression
// state. One row per (user_id, card_name).
type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID       int64  `bun:"id,pk,autoincrement"`
	UserID   string `bun:"user_id,notnull"`
	CardName string `bun:"card_name,notnull"`

	Resolve    int64 `bun:"resolve,notnull,default:0"`
	Mental     int64 `bun:"mental,notnull,default:0"`
	Physical   int64 `bun:"physical,notnull,default:0"`
	Social     int64 `bun:"social,notnull,default:0"`
	Initiative int64 `bun:"initiative,notnull,default:0"`

	// Star is bounded [1,5]; the ledger never writes values outside that.
	Star         int      `bun:"star,notnull,default:1"`
	SupportBonus string   `bun:"support_bonus,type:text,default:''"`
	Tags         []string `bun:"tags,type:jsonb"`

	Obtained  time.Time `bun:"obtained,notnull,default:current_timestamp"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
