package ratings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/migrations"
	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

type fixture struct {
	user *models.User
	book *models.Book
}

func newFixture(ctx context.Context, t *testing.T, db *bun.DB) fixture {
	t.Helper()

	now := time.Now()

	user := &models.User{CreatedAt: now, UpdatedAt: now, Username: "testuser", PasswordHash: "x", Name: "Test"}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	author := &models.Author{CreatedAt: now, UpdatedAt: now, Name: "Test"}
	_, err = db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	book := &models.Book{CreatedAt: now, UpdatedAt: now, Name: "Test Book", AuthorID: author.ID}
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return fixture{user: user, book: book}
}

func TestServiceUpsertStar_InsertThenOverwrite(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	f := newFixture(ctx, t, db)

	err := svc.UpsertStar(ctx, f.user.ID, f.book.ID, 4)
	require.NoError(t, err)

	star, err := svc.RetrieveStar(ctx, f.user.ID, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, star)

	// A second rating for the same pair replaces the first instead of adding
	// a row.
	err = svc.UpsertStar(ctx, f.user.ID, f.book.ID, 2)
	require.NoError(t, err)

	star, err = svc.RetrieveStar(ctx, f.user.ID, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, star)

	count, err := db.NewSelect().Model((*models.Rating)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceUpsertStar_OutOfRange(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	f := newFixture(ctx, t, db)

	for _, star := range []int{0, 6, -1} {
		err := svc.UpsertStar(ctx, f.user.ID, f.book.ID, star)
		require.Error(t, err)

		var codeErr *errcodes.Error
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, 400, codeErr.HTTPCode)
		assert.Equal(t, "Invalid star rating. Please provide a value between 1 and 5.", codeErr.Message)
	}
}

func TestServiceUpsertStar_FailureShapes(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	f := newFixture(ctx, t, db)

	// Missing book wins over missing user and is a 404.
	err := svc.UpsertStar(ctx, 999, 999, 3)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))

	// Missing user with an existing book is a 400.
	err = svc.UpsertStar(ctx, 999, f.book.ID, 3)
	assert.ErrorIs(t, err, errcodes.ValidationError("User not found"))

	// Both exist but no rating yet: retrieval is a 404.
	_, err = svc.RetrieveStar(ctx, f.user.ID, f.book.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Rating"))
}

func TestServiceAverageStar(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	f := newFixture(ctx, t, db)

	// No ratings yet.
	avg, err := svc.AverageStar(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	now := time.Now()
	second := &models.User{CreatedAt: now, UpdatedAt: now, Username: "seconduser", PasswordHash: "x", Name: "Second"}
	_, err = db.NewInsert().Model(second).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.UpsertStar(ctx, f.user.ID, f.book.ID, 3))
	require.NoError(t, svc.UpsertStar(ctx, second.ID, f.book.ID, 5))

	avg, err = svc.AverageStar(ctx, f.book.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 0.0001)
}
