package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormCouponRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the coupon row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(int64(4), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "shop_id", "code", "discount", "min_spend", "quantity"}).
				AddRow(4, now, now, 2, "LAST1", "50.00", "0.00", 1))

		coupon, err := NewGormCouponRepository(db).FindByIDForUpdate(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, "LAST1", coupon.Code)
		assert.Equal(t, 1, coupon.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing coupon", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(int64(9), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		coupon, err := NewGormCouponRepository(db).FindByIDForUpdate(context.Background(), 9)

		assert.Nil(t, coupon)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByMerchantTradeNoForUpdate(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE merchant_trade_no = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs("SM0000000000000001", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "order_id", "payment_method_id", "payment_status_id", "amount", "merchant_trade_no"}).
			AddRow(7, now, now, 3, 1, 1, "250.00", "SM0000000000000001"))

	p, err := NewGormPaymentRepository(db).FindByMerchantTradeNoForUpdate(context.Background(), "SM0000000000000001")

	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.False(t, p.IsPaid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockingFinders_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	_, err := NewGormCouponRepository(db).FindByIDForUpdate(ctx, 1)
	assert.Equal(t, shared.ErrNotFound, err)

	_, err = NewGormPaymentRepository(db).FindByMerchantTradeNoForUpdate(ctx, "nope")
	assert.Equal(t, shared.ErrNotFound, err)
}
