// Package seed inserts a small sample catalog so the read endpoints return
// something out of the box during development. It is idempotent: running it
// against a database that already has books is a no-op.
package seed

import (
	"context"
	"time"

	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// Catalog inserts the sample authors, categories, and books and returns the
// number of rows written.
func Catalog(ctx context.Context, db *bun.DB) (int, error) {
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()

	authors := []*models.Author{
		{CreatedAt: now, UpdatedAt: now, Name: "Ursula", Surname: strptr("Le Guin")},
		{CreatedAt: now, UpdatedAt: now, Name: "Italo", Surname: strptr("Calvino")},
		{CreatedAt: now, UpdatedAt: now, Name: "Octavia", Surname: strptr("Butler")},
	}
	if _, err := db.NewInsert().Model(&authors).Exec(ctx); err != nil {
		return 0, errors.WithStack(err)
	}

	categories := []*models.Category{
		{CreatedAt: now, UpdatedAt: now, Name: "Science Fiction"},
		{CreatedAt: now, UpdatedAt: now, Name: "Fantasy"},
		{CreatedAt: now, UpdatedAt: now, Name: "Short Stories"},
	}
	if _, err := db.NewInsert().Model(&categories).Exec(ctx); err != nil {
		return 0, errors.WithStack(err)
	}

	books := []*models.Book{
		{CreatedAt: now, UpdatedAt: now, Name: "The Dispossessed", AuthorID: authors[0].ID, PublishedYear: intptr(1974)},
		{CreatedAt: now, UpdatedAt: now, Name: "A Wizard of Earthsea", AuthorID: authors[0].ID, PublishedYear: intptr(1968)},
		{CreatedAt: now, UpdatedAt: now, Name: "Invisible Cities", AuthorID: authors[1].ID, PublishedYear: intptr(1972)},
		{CreatedAt: now, UpdatedAt: now, Name: "Kindred", AuthorID: authors[2].ID, PublishedYear: intptr(1979)},
	}
	if _, err := db.NewInsert().Model(&books).Exec(ctx); err != nil {
		return 0, errors.WithStack(err)
	}

	junctions := []*models.BookCategory{
		{BookID: books[0].ID, CategoryID: categories[0].ID},
		{BookID: books[1].ID, CategoryID: categories[1].ID},
		{BookID: books[2].ID, CategoryID: categories[2].ID},
		{BookID: books[3].ID, CategoryID: categories[0].ID},
	}
	if _, err := db.NewInsert().Model(&junctions).Exec(ctx); err != nil {
		return 0, errors.WithStack(err)
	}

	return len(authors) + len(categories) + len(books) + len(junctions), nil
}
