package integration

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/shopmall/backend/internal/application/mocks"
	paymentapp "github.com/shopmall/backend/internal/application/payment"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/infrastructure/cache"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPaymentFlow_ConcurrentNotificationsSettleOnce(t *testing.T) {
	ctx := context.Background()
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	s := tdb.Store()

	buyer := s.SeedUser(t)
	shop := s.SeedShop(t, s.SeedUser(t).ID)
	product := s.SeedProduct(t, shop.ID, "100", 5)
	order := s.SeedOrder(t, buyer.ID, shop.ID, s.SeedAddress(t, buyer.ID).ID, product.ID)

	method, err := s.Repos.PaymentMethods().FindByName(ctx, "ECPay")
	require.NoError(t, err)
	pending, err := s.Repos.PaymentStatuses().FindByName(ctx, "pending")
	require.NoError(t, err)
	paid, err := s.Repos.PaymentStatuses().FindByName(ctx, "paid")
	require.NoError(t, err)
	failed, err := s.Repos.PaymentStatuses().FindByName(ctx, "failed")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	gateway := new(mocks.PaymentGateway)
	payments := paymentapp.NewPaymentService(s.Repos.Payments(), s.Repos.Orders(), s.Scope, gateway, "", log)
	created, err := payments.Create(ctx, paymentapp.CreatePaymentRequest{
		OrderID: order.ID, PaymentMethodID: method.ID, PaymentStatusID: pending.ID,
	})
	require.NoError(t, err)

	form := url.Values{"MerchantTradeNo": {created.MerchantTradeNo}}
	gateway.On("VerifyNotification", mock.Anything, mock.Anything).Return(&payment.Notification{
		MerchantTradeNo: created.MerchantTradeNo,
		TradeNo:         "2405011200000001",
		ReturnCode:      1,
		Amount:          decimal.NewFromInt(100),
		PaymentDate:     time.Date(2024, 5, 1, 4, 3, 4, 0, time.UTC),
	}, nil)
	gateway.On("QueryTrade", mock.Anything, created.MerchantTradeNo).Return(&payment.TradeInfo{
		MerchantTradeNo: created.MerchantTradeNo, Status: "1", Amount: decimal.NewFromInt(100),
	}, nil)

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })
	publisher := &testutil.RecordingPublisher{}
	notify := paymentapp.NewNotifyService(gateway, s.Scope, idempotency, publisher,
		paymentapp.NotifyConfig{PaidStatusID: paid.ID, FailedStatusID: failed.ID}, log)

	// the gateway retries while the first delivery is still being settled
	const deliveries = 5
	errs := make(chan error, deliveries)
	for i := 0; i < deliveries; i++ {
		go func() {
			errs <- notify.HandleNotification(ctx, form)
		}()
	}
	for i := 0; i < deliveries; i++ {
		assert.NoError(t, <-errs)
	}

	assert.Equal(t, []string{payment.EventTypePaymentPaid}, publisher.EventTypes())
	got, err := payments.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, paid.ID, got.PaymentStatusID)
	require.NotNil(t, got.PaidAt)
}
