package categories

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

func TestServiceListCategories(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	now := time.Now()
	rows := []*models.Category{
		{CreatedAt: now, UpdatedAt: now, Name: "Fantasy"},
		{CreatedAt: now, UpdatedAt: now, Name: "Science Fiction"},
	}
	_, err = db.NewInsert().Model(&rows).Exec(ctx)
	require.NoError(t, err)

	categories, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestServiceListCategories_NameUniqueness(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now()
	first := &models.Category{CreatedAt: now, UpdatedAt: now, Name: "Fantasy"}
	_, err := db.NewInsert().Model(first).Exec(ctx)
	require.NoError(t, err)

	// Category names are unique case-insensitively.
	dup := &models.Category{CreatedAt: now, UpdatedAt: now, Name: "FANTASY"}
	_, err = db.NewInsert().Model(dup).Exec(ctx)
	require.Error(t, err)
}
