package authors

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

func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	authors := []*models.Author{}

	err := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

// RetrieveAuthor fetches a single author by id, applying the same
// zero/one/many row contract as the other primary-key lookups.
func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	authors := []*models.Author{}

	err := svc.db.
		NewSelect().
		Model(&authors).
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	switch len(authors) {
	case 0:
		return nil, errcodes.NotFound("Author")
	case 1:
		return authors[0], nil
	default:
		return nil, errors.Errorf("multiple authors found with id %d", id)
	}
}
