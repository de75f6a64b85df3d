package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormParentCategoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing category", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
			AddRow(1, now, now, "Electronics")
		mock.ExpectQuery(`SELECT \* FROM "parent_categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(1), 1).
			WillReturnRows(rows)

		category, err := repo.FindByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), category.ID)
		assert.Equal(t, "Electronics", category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for non-existent category", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "parent_categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(999), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormParentCategoryRepository_ExistsByName(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormParentCategoryRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "parent_categories" WHERE name = \$1`).
		WithArgs("Electronics").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "Electronics")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormParentCategoryRepository_Delete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		mock.ExpectExec(`DELETE FROM "parent_categories" WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		mock.ExpectExec(`DELETE FROM "parent_categories" WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, shared.ErrNotFound, repo.Delete(context.Background(), 5))
	})
}

func TestGormParentCategoryRepository_FindAllByID(t *testing.T) {
	t.Run("empty id list skips the query", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		categories, err := repo.FindAllByID(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, categories)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns only resolvable ids", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormParentCategoryRepository(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "parent_categories" WHERE id IN \(\$1,\$2\) ORDER BY id ASC`).
			WithArgs(int64(1), int64(999)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
				AddRow(1, now, now, "Electronics"))

		categories, err := repo.FindAllByID(context.Background(), []int64{1, 999})

		require.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChildCategoryRepository_FindByID_LoadsParents(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormChildCategoryRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "child_categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(int64(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
			AddRow(2, now, now, "Phones"))
	mock.ExpectQuery(`SELECT \* FROM "child_category_parents" WHERE child_category_id IN \(\$1\) ORDER BY parent_category_id ASC`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"child_category_id", "parent_category_id"}).
			AddRow(2, 1).
			AddRow(2, 3))

	category, err := repo.FindByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, category.ParentIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormChildCategoryRepository_ExistsByParentID(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormChildCategoryRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "child_category_parents" WHERE parent_category_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByParentID(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.Equal(t, shared.ErrNotFound, translateError(gorm.ErrRecordNotFound))
	assert.Equal(t, shared.ErrAlreadyExists, translateError(gorm.ErrDuplicatedKey))
	assert.Equal(t, shared.KindConflict, shared.KindOf(translateError(gorm.ErrForeignKeyViolated)))

	wrapped := translateError(errors.New("connection reset"))
	assert.Contains(t, wrapped.Error(), "database error")
	assert.Empty(t, shared.KindOf(wrapped))
}

func TestChildCategory_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	parents := NewGormParentCategoryRepository(db)
	children := NewGormChildCategoryRepository(db)

	electronics, err := catalog.NewParentCategory("Electronics")
	require.NoError(t, err)
	require.NoError(t, parents.Save(ctx, electronics))
	home, err := catalog.NewParentCategory("Home")
	require.NoError(t, err)
	require.NoError(t, parents.Save(ctx, home))

	phones, err := catalog.NewChildCategory("Phones", []int64{electronics.ID, home.ID})
	require.NoError(t, err)
	require.NoError(t, children.Save(ctx, phones))

	byParent, err := children.FindByParentID(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, byParent, 1)
	assert.Equal(t, []int64{electronics.ID, home.ID}, byParent[0].ParentIDs)

	exists, err := children.ExistsByParentID(ctx, electronics.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		dup, err := catalog.NewParentCategory("Electronics")
		require.NoError(t, err)
		assert.Equal(t, shared.ErrAlreadyExists, parents.Save(ctx, dup))
	})

	require.NoError(t, children.Delete(ctx, phones.ID))
	exists, err = children.ExistsByParentID(ctx, electronics.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
