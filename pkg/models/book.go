package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            int       `bun:",pk,nullzero" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `bun:",nullzero" json:"name"`
	ImageLink     *string   `json:"image_link,omitempty"`
	AuthorID      int       `bun:",nullzero" json:"author_id"`
	Description   *string   `json:"description,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`

	// Relations
	Author *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
