package trade

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type orderFixture struct {
	store     *testutil.Store
	svc       *OrderService
	publisher *testutil.RecordingPublisher
	logs      *observer.ObservedLogs
	userID    int64
	shopID    int64
	addressID int64
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	s := testutil.NewStore(t)
	user := s.SeedUser(t)
	owner := s.SeedUser(t)
	shop := s.SeedShop(t, owner.ID)
	address := s.SeedAddress(t, user.ID)

	publisher := &testutil.RecordingPublisher{}
	core, logs := observer.New(zap.InfoLevel)
	svc := NewOrderService(s.Repos.OrderRepo, s.Repos.UserRepo, s.Repos.ShopRepo, s.Scope, publisher, zap.New(core))

	return &orderFixture{
		store: s, svc: svc, publisher: publisher, logs: logs,
		userID: user.ID, shopID: shop.ID, addressID: address.ID,
	}
}

func (f *orderFixture) request(items ...OrderItemRequest) CreateOrderRequest {
	return CreateOrderRequest{UserID: f.userID, ShopID: f.shopID, AddressID: f.addressID, Items: items}
}

func TestOrderService_Create_CapturesPricesAndReservesStock(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	pen := f.store.SeedProduct(t, f.shopID, "12.50", 10)
	ink := f.store.SeedProduct(t, f.shopID, "3.00", 5)

	resp, err := f.svc.Create(ctx, f.request(
		OrderItemRequest{ProductID: pen.ID, Quantity: 2},
		OrderItemRequest{ProductID: ink.ID, Quantity: 1},
		OrderItemRequest{ProductID: pen.ID, Quantity: 1},
	))

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(resp.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("40.50").Equal(resp.Subtotal))
	assert.True(t, resp.Total.Equal(resp.Subtotal))

	reloaded, err := f.store.Repos.Products().FindByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Stock)

	assert.Equal(t, []string{trade.EventTypeOrderCreated}, f.publisher.EventTypes())
	assert.Equal(t, 1, f.logs.FilterMessage("Order placed").Len())
}

func TestOrderService_Create_AppliesCoupon(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "100", 10)
	coupon := f.store.SeedCoupon(t, f.shopID, "150", "100", 1)

	req := f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1})
	req.CouponID = &coupon.ID
	resp, err := f.svc.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, &coupon.ID, resp.CouponID)
	assert.True(t, decimal.NewFromInt(100).Equal(resp.Discount))
	assert.True(t, resp.Total.IsZero(), "total never goes below zero")

	_, err = f.svc.Create(ctx, req)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err), "coupon is exhausted")
	assert.Equal(t, int64(1), f.store.Count(t, "orders"))
}

func TestOrderService_Create_CouponBelowMinimumSpend(t *testing.T) {
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "20", 10)
	coupon := f.store.SeedCoupon(t, f.shopID, "5", "50", 3)

	req := f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1})
	req.CouponID = &coupon.ID
	_, err := f.svc.Create(context.Background(), req)

	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	reloaded, _ := f.store.Repos.Products().FindByID(context.Background(), product.ID)
	assert.Equal(t, 10, reloaded.Stock, "stock reservation rolls back with the order")
}

func TestOrderService_Create_RejectsForeignReferences(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "10", 10)
	otherShop := f.store.SeedShop(t, f.userID)
	foreignProduct := f.store.SeedProduct(t, otherShop.ID, "10", 10)
	foreignCoupon := f.store.SeedCoupon(t, otherShop.ID, "1", "0", 5)
	strangersAddress := f.store.SeedAddress(t, f.store.SeedUser(t).ID)

	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		message string
	}{
		{"unknown user", func(r *CreateOrderRequest) { r.UserID = 9999 }, "user not found: 9999"},
		{"unknown shop", func(r *CreateOrderRequest) { r.ShopID = 9999 }, "shop not found: 9999"},
		{"unknown address", func(r *CreateOrderRequest) { r.AddressID = 9999 }, "user address not found: 9999"},
		{"address of another user", func(r *CreateOrderRequest) { r.AddressID = strangersAddress.ID }, ""},
		{"unknown product", func(r *CreateOrderRequest) { r.Items = append(r.Items, OrderItemRequest{ProductID: 9999, Quantity: 1}) }, "product not found: [9999]"},
		{"product of another shop", func(r *CreateOrderRequest) { r.Items = []OrderItemRequest{{ProductID: foreignProduct.ID, Quantity: 1}} }, ""},
		{"coupon of another shop", func(r *CreateOrderRequest) { r.CouponID = &foreignCoupon.ID }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1})
			tt.mutate(&req)

			_, err := f.svc.Create(ctx, req)

			assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))
			if tt.message != "" {
				assert.EqualError(t, err, tt.message)
			}
		})
	}
	assert.Equal(t, int64(0), f.store.Count(t, "orders"))
	assert.Empty(t, f.publisher.Events())
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "10", 1)

	_, err := f.svc.Create(context.Background(), f.request(OrderItemRequest{ProductID: product.ID, Quantity: 2}))

	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestOrderService_UpdateAndListings(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "10", 10)
	placed, err := f.svc.Create(ctx, f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, placed.ID, UpdateOrderRequest{Note: shared.Some("leave at the door")})
	require.NoError(t, err)
	assert.Equal(t, "leave at the door", updated.Note)
	assert.Len(t, updated.Items, 1)

	byUser, err := f.svc.GetByUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "leave at the door", byUser[0].Note)

	byShop, err := f.svc.GetByShop(ctx, f.shopID)
	require.NoError(t, err)
	assert.Len(t, byShop, 1)

	_, err = f.svc.GetByShop(ctx, 9999)
	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	product := f.store.SeedProduct(t, f.shopID, "10", 10)
	placed, err := f.svc.Create(ctx, f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, placed.ID))
	assert.Equal(t, int64(0), f.store.Count(t, "order_items"))

	err = f.svc.Delete(ctx, placed.ID)
	assert.EqualError(t, err, "order not found: "+strconv.FormatInt(placed.ID, 10))
}

func TestOrderService_Delete_Guards(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	repos.Orders.On("ExistsByID", ctx, int64(4)).Return(true, nil)
	repos.Shipments.On("ExistsByOrderID", ctx, int64(4)).Return(true, nil)
	repos.Payments.On("ExistsByOrderID", ctx, int64(4)).Return(true, nil)
	svc := NewOrderService(repos.Orders, repos.Users, repos.Shops, repos.Scope(), nil, nil)

	err := svc.Delete(ctx, 4)

	assert.EqualError(t, err, "shipment exists, payment exists")
}

func TestOrderService_PublishFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.publisher.Err = errors.New("broker unavailable")
	product := f.store.SeedProduct(t, f.shopID, "10", 10)

	_, err := f.svc.Create(ctx, f.request(OrderItemRequest{ProductID: product.ID, Quantity: 1}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to publish order events").Len())
}
