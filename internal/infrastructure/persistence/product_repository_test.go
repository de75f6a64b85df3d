package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_FindAllByIDForUpdate(t *testing.T) {
	t.Run("locks rows in id order", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\) ORDER BY id ASC FOR UPDATE`).
			WithArgs(int64(3), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "shop_id", "name", "price", "stock"}).
				AddRow(1, now, now, 9, "Lamp", "80.00", 4).
				AddRow(3, now, now, 9, "Desk", "1200.00", 1))
		mock.ExpectQuery(`SELECT \* FROM "product_child_categories" WHERE product_id IN \(\$1,\$2\) ORDER BY child_category_id ASC`).
			WithArgs(int64(1), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "child_category_id"}).AddRow(3, 12))

		products, err := repo.FindAllByIDForUpdate(context.Background(), []int64{3, 1})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, []int64{}, products[0].ChildCategoryIDs)
		assert.Equal(t, []int64{12}, products[1].ChildCategoryIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids skips the query", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		products, err := NewGormProductRepository(db).FindAllByIDForUpdate(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := catalog.NewProduct(1, "Kettle", decimal.RequireFromString("19.90"), 5)
	require.NoError(t, err)
	product.ChildCategoryIDs = []int64{2, 4}
	require.NoError(t, repo.Save(ctx, product))

	locked, err := repo.FindAllByIDForUpdate(ctx, []int64{product.ID})
	require.NoError(t, err)
	require.Len(t, locked, 1)
	assert.Equal(t, []int64{2, 4}, locked[0].ChildCategoryIDs)

	product.ChildCategoryIDs = []int64{4}
	require.NoError(t, repo.Save(ctx, product))
	byCategory, err := repo.FindByChildCategoryID(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	require.NoError(t, repo.Delete(ctx, product.ID))
	exists, err := repo.ExistsByChildCategoryID(ctx, 4)
	require.NoError(t, err)
	assert.False(t, exists)
}
