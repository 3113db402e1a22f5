package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rating is one user's star rating of one book. The (user_id, book_id) pair is
// the primary key; writes go through an insert-or-update on that key.
type Rating struct {
	bun.BaseModel `bun:"table:book_stars,alias:bs"`

	UserID    int       `bun:",pk" json:"user_id"`
	BookID    int       `bun:",pk" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Star      int       `bun:",nullzero" json:"star"`
}
