package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	DiscordID string `bun:"discord_id,notnull,unique"`
	Username  string `bun:"username,notnull"`

	// PPT is the spendable spin currency. Kept non-negative by the
	// conditional debit in UserRepository.
	PPT         int64 `bun:"ppt,notnull,default:0"`
	BlackTokens int64 `bun:"black_tokens,notnull,default:0"`
	FTPS        int64 `bun:"ftps,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
