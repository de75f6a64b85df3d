package integration

import (
	"context"
	"testing"

	tradeapp "github.com/shopmall/backend/internal/application/trade"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// orderFlowSetup seeds a buyer with an address and a shop selling one product
type orderFlowSetup struct {
	store     *testutil.Store
	service   *tradeapp.OrderService
	publisher *testutil.RecordingPublisher
	buyerID   int64
	addressID int64
	shopID    int64
	productID int64
}

func newOrderFlowSetup(t *testing.T, stock int) *orderFlowSetup {
	t.Helper()
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	s := tdb.Store()

	buyer := s.SeedUser(t)
	address := s.SeedAddress(t, buyer.ID)
	shop := s.SeedShop(t, s.SeedUser(t).ID)
	product := s.SeedProduct(t, shop.ID, "250", stock)

	publisher := &testutil.RecordingPublisher{}
	return &orderFlowSetup{
		store:     s,
		service:   tradeapp.NewOrderService(s.Repos.Orders(), s.Repos.Users(), s.Repos.Shops(), s.Scope, publisher, zaptest.NewLogger(t)),
		publisher: publisher,
		buyerID:   buyer.ID,
		addressID: address.ID,
		shopID:    shop.ID,
		productID: product.ID,
	}
}

func (f *orderFlowSetup) request(quantity int) tradeapp.CreateOrderRequest {
	return tradeapp.CreateOrderRequest{
		UserID:    f.buyerID,
		ShopID:    f.shopID,
		AddressID: f.addressID,
		Items:     []tradeapp.OrderItemRequest{{ProductID: f.productID, Quantity: quantity}},
	}
}

func (f *orderFlowSetup) stock(t *testing.T) int {
	t.Helper()
	p, err := f.store.Repos.Products().FindByID(context.Background(), f.productID)
	require.NoError(t, err)
	return p.Stock
}

func TestOrderFlow_ReservesStockAndRedeemsCoupon(t *testing.T) {
	f := newOrderFlowSetup(t, 5)
	coupon := f.store.SeedCoupon(t, f.shopID, "50", "300", 2)

	req := f.request(2)
	req.CouponID = &coupon.ID
	order, err := f.service.Create(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(order.Subtotal), order.Subtotal.String())
	assert.True(t, decimal.NewFromInt(450).Equal(order.Total), order.Total.String())
	assert.Equal(t, 3, f.stock(t))

	redeemed, err := f.store.Repos.Coupons().FindByID(context.Background(), coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.Quantity)

	assert.Equal(t, []string{trade.EventTypeOrderCreated}, f.publisher.EventTypes())
}

func TestOrderFlow_InsufficientStockRollsBack(t *testing.T) {
	f := newOrderFlowSetup(t, 1)
	coupon := f.store.SeedCoupon(t, f.shopID, "10", "0", 1)

	req := f.request(3)
	req.CouponID = &coupon.ID
	_, err := f.service.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	assert.Equal(t, 1, f.stock(t))
	assert.Equal(t, int64(0), f.store.Count(t, "orders"))
	assert.Equal(t, int64(0), f.store.Count(t, "order_items"))
	assert.Empty(t, f.publisher.Events())

	untouched, err := f.store.Repos.Coupons().FindByID(context.Background(), coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, untouched.Quantity)
}

func TestOrderFlow_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newOrderFlowSetup(t, 3)

	const buyers = 6
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		go func() {
			_, err := f.service.Create(context.Background(), f.request(1))
			errs <- err
		}()
	}

	placed := 0
	for i := 0; i < buyers; i++ {
		if err := <-errs; err == nil {
			placed++
		}
	}
	assert.LessOrEqual(t, placed, 3)
	assert.Equal(t, 3-placed, f.stock(t))
	assert.Equal(t, int64(placed), f.store.Count(t, "orders"))
}

func TestOrderFlow_ConcurrentOrdersRedeemLastCouponOnce(t *testing.T) {
	f := newOrderFlowSetup(t, 10)
	coupon := f.store.SeedCoupon(t, f.shopID, "20", "0", 1)

	// one product per buyer, so only the coupon row is contended
	const buyers = 5
	products := make([]int64, buyers)
	for i := range products {
		products[i] = f.store.SeedProduct(t, f.shopID, "100", 10).ID
	}

	errs := make(chan error, buyers)
	for _, productID := range products {
		go func(productID int64) {
			req := f.request(1)
			req.Items = []tradeapp.OrderItemRequest{{ProductID: productID, Quantity: 1}}
			req.CouponID = &coupon.ID
			_, err := f.service.Create(context.Background(), req)
			errs <- err
		}(productID)
	}

	placed := 0
	for i := 0; i < buyers; i++ {
		if err := <-errs; err == nil {
			placed++
		}
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, int64(1), f.store.Count(t, "orders"))

	left, err := f.store.Repos.Coupons().FindByID(context.Background(), coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, left.Quantity)
}
