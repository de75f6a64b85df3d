package telemetry

import (
	"context"
	"fmt"

	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/shopmall/backend"

// ShopMetrics records business counters for orders and payments
type ShopMetrics struct {
	ordersPlaced   metric.Int64Counter
	orderValue     metric.Float64Histogram
	paymentsPaid   metric.Int64Counter
	paymentsAmount metric.Float64Counter
}

// NewShopMetrics registers the instruments on provider, or on the global provider when nil
func NewShopMetrics(provider metric.MeterProvider) (*ShopMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	m := &ShopMetrics{}
	var err error
	if m.ordersPlaced, err = meter.Int64Counter("shop.orders.placed",
		metric.WithDescription("Orders placed"), metric.WithUnit("{order}")); err != nil {
		return nil, fmt.Errorf("orders counter: %w", err)
	}
	if m.orderValue, err = meter.Float64Histogram("shop.orders.total",
		metric.WithDescription("Order totals after discount"), metric.WithUnit("TWD")); err != nil {
		return nil, fmt.Errorf("order total histogram: %w", err)
	}
	if m.paymentsPaid, err = meter.Int64Counter("shop.payments.paid",
		metric.WithDescription("Payments confirmed by the gateway"), metric.WithUnit("{payment}")); err != nil {
		return nil, fmt.Errorf("payments counter: %w", err)
	}
	if m.paymentsAmount, err = meter.Float64Counter("shop.payments.amount",
		metric.WithDescription("Amount collected through the gateway"), metric.WithUnit("TWD")); err != nil {
		return nil, fmt.Errorf("payment amount counter: %w", err)
	}
	return m, nil
}

// Observe records the metrics carried by one domain event
func (m *ShopMetrics) Observe(ctx context.Context, event shared.DomainEvent) {
	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		shop := metric.WithAttributes(attribute.Int64("shop_id", e.ShopID))
		m.ordersPlaced.Add(ctx, 1, shop)
		m.orderValue.Record(ctx, e.Total.InexactFloat64(), shop)
	case *payment.PaymentPaidEvent:
		m.paymentsPaid.Add(ctx, 1)
		m.paymentsAmount.Add(ctx, e.Amount.InexactFloat64())
	}
}

// MeteredPublisher records ShopMetrics for every event and forwards it to next
type MeteredPublisher struct {
	next    shared.EventPublisher
	metrics *ShopMetrics
}

// NewMeteredPublisher wraps next
func NewMeteredPublisher(next shared.EventPublisher, metrics *ShopMetrics) *MeteredPublisher {
	if next == nil {
		next = shared.NoopEventPublisher{}
	}
	return &MeteredPublisher{next: next, metrics: metrics}
}

// Publish implements shared.EventPublisher
func (p *MeteredPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.metrics.Observe(ctx, e)
	}
	return p.next.Publish(ctx, events...)
}
