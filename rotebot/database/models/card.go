package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Card is the immutable character template. Authored out-of-band and
// imported via cmd/migrate; the bot only ever reads these rows.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull,unique"`
	Personality string `bun:"personality,type:text,default:''"`
	Moves       string `bun:"moves,type:text,default:''"`
	ImageURL    string `bun:"image_url,type:text,default:''"`

	// Base stat block, copied into a user's owned card on first acquisition.
	Resolve    int64 `bun:"resolve,notnull,default:0"`
	Mental     int64 `bun:"mental,notnull,default:0"`
	Physical   int64 `bun:"physical,notnull,default:0"`
	Social     int64 `bun:"social,notnull,default:0"`
	Initiative int64 `bun:"initiative,notnull,default:0"`

	Star         int      `bun:"star,notnull,default:1"`
	SupportBonus string   `bun:"support_bonus,type:text,default:''"`
	Tags         []string `bun:"tags,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
