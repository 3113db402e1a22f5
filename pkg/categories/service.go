package categories

import (
	"context"

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

func (svc *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories := []*models.Category{}

	err := svc.db.
		NewSelect().
		Model(&categories).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return categories, nil
}
