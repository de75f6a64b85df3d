package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCouponRequest(shopID int64) CreateCouponRequest {
	now := time.Now().UTC().Truncate(time.Second)
	return CreateCouponRequest{
		ShopID:     shopID,
		Code:       "spring10",
		Discount:   decimal.NewFromInt(10),
		MinSpend:   decimal.NewFromInt(100),
		Quantity:   5,
		ValidFrom:  now,
		ValidUntil: now.Add(24 * time.Hour),
	}
}

func TestCouponService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewCouponService(nil, nil, mocks.NewRepos().Scope())

	req := validCouponRequest(1)
	req.ValidUntil = req.ValidFrom
	_, err := svc.Create(ctx, req)
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	req = validCouponRequest(1)
	req.Discount = decimal.Zero
	_, err = svc.Create(ctx, req)
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestCouponService_Update_RechecksValidity(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	now := time.Now()
	coupon := &store.Coupon{
		BaseEntity: shared.BaseEntity{ID: 3},
		Code:       "SPRING10",
		Discount:   decimal.NewFromInt(10),
		ValidFrom:  now,
		ValidUntil: now.Add(time.Hour),
	}
	repos.Coupons.On("FindByID", ctx, int64(3)).Return(coupon, nil)
	svc := NewCouponService(repos.Coupons, repos.Shops, repos.Scope())

	_, err := svc.Update(ctx, 3, UpdateCouponRequest{ValidUntil: shared.Some(now.Add(-time.Hour))})

	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	repos.Coupons.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCouponLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	user := s.SeedUser(t)
	addr := s.SeedAddress(t, user.ID)
	shop := s.SeedShop(t, user.ID)
	product := s.SeedProduct(t, shop.ID, "50", 10)
	svc := NewCouponService(s.Repos.Coupons(), s.Repos.Shops(), s.Scope)

	created, err := svc.Create(ctx, validCouponRequest(shop.ID))
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", created.Code)

	_, err = svc.Create(ctx, validCouponRequest(shop.ID))
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	_, err = svc.Create(ctx, validCouponRequest(999))
	assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))

	updated, err := svc.Update(ctx, created.ID, UpdateCouponRequest{Quantity: shared.Some(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(updated.Discount))

	byShop, err := svc.GetByShop(ctx, shop.ID)
	require.NoError(t, err)
	assert.Len(t, byShop, 1)

	order := s.SeedOrder(t, user.ID, shop.ID, addr.ID, product.ID)
	order.CouponID = &created.ID
	require.NoError(t, s.Repos.Orders().Save(ctx, order))
	assert.EqualError(t, svc.Delete(ctx, created.ID), "order exists")

	require.NoError(t, s.Repos.Orders().Delete(ctx, order.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}
