package ratings

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Stars are whole values between MinStar and MaxStar inclusive.
const (
	MinStar = 1
	MaxStar = 5
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// AverageStar returns the arithmetic mean of every rating for a book, or 0.0
// when the book has no ratings yet.
func (svc *Service) AverageStar(ctx context.Context, bookID int) (float64, error) {
	var avg sql.NullFloat64

	err := svc.db.
		NewSelect().
		Model((*models.Rating)(nil)).
		ColumnExpr("AVG(bs.star)").
		Where("bs.book_id = ?", bookID).
		Scan(ctx, &avg)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// RetrieveStar returns the star value one user gave one book. The three
// failure shapes are distinct: missing book is a 404, missing user is a 400,
// and a missing rating for an existing pair is a 404.
func (svc *Service) RetrieveStar(ctx context.Context, userID, bookID int) (int, error) {
	if err := svc.checkBookAndUser(ctx, userID, bookID); err != nil {
		return 0, err
	}

	rating := &models.Rating{}
	err := svc.db.
		NewSelect().
		Model(rating).
		Where("bs.user_id = ? AND bs.book_id = ?", userID, bookID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errcodes.NotFound("Rating")
		}
		return 0, errors.WithStack(err)
	}

	return rating.Star, nil
}

// UpsertStar records a rating, replacing any previous rating for the same
// (user, book) pair. Conflict resolution is delegated to the database; no
// application-level lock is taken.
func (svc *Service) UpsertStar(ctx context.Context, userID, bookID, star int) error {
	if star < MinStar || star > MaxStar {
		return errcodes.ValidationError("Invalid star rating. Please provide a value between 1 and 5.")
	}

	if err := svc.checkBookAndUser(ctx, userID, bookID); err != nil {
		return err
	}

	now := time.Now()
	rating := &models.Rating{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: now,
		UpdatedAt: now,
		Star:      star,
	}

	_, err := svc.db.
		NewInsert().
		Model(rating).
		On("CONFLICT (user_id, book_id) DO UPDATE").
		Set("star = EXCLUDED.star").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) checkBookAndUser(ctx context.Context, userID, bookID int) error {
	bookExists, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Where("id = ?", bookID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !bookExists {
		return errcodes.NotFound("Book")
	}

	userExists, err := svc.db.
		NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", userID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !userExists {
		return errcodes.ValidationError("User not found")
	}

	return nil
}
