package books

import (
	"context"

	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// ListBooks returns every book in the catalog.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// RetrieveBook fetches a single book by id. Zero rows is a not-found; more
// than one row for a primary key is a data-integrity anomaly and surfaces as
// a server error, never as valid data.
func (svc *Service) RetrieveBook(ctx context.Context, id int) (*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	switch len(books) {
	case 0:
		return nil, errcodes.NotFound("Book")
	case 1:
		return books[0], nil
	default:
		return nil, errors.Errorf("multiple books found with id %d", id)
	}
}

// ListBooksByCategory returns the books linked to a category through the
// book_categories junction table.
func (svc *Service) ListBooksByCategory(ctx context.Context, categoryID int) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Join("INNER JOIN book_categories bc ON bc.book_id = b.id").
		Where("bc.category_id = ?", categoryID).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// ListBooksByAuthor returns the books written by the given author.
func (svc *Service) ListBooksByAuthor(ctx context.Context, authorID int) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Where("b.author_id = ?", authorID).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// RecommendBooks samples up to max books at random. Never returns more rows
// than exist in the table. The sampling is a convenience, not statistically
// rigorous.
func (svc *Service) RecommendBooks(ctx context.Context, max int) ([]*models.Book, error) {
	total, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Count(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	limit := max
	if total < limit {
		limit = total
	}
	if limit == 0 {
		return []*models.Book{}, nil
	}

	books := []*models.Book{}
	err = svc.db.
		NewSelect().
		Model(&books).
		OrderExpr("RANDOM()").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}
