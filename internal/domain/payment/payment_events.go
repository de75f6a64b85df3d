package payment

import (
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventTypePaymentPaid is published after the gateway confirms a payment
const EventTypePaymentPaid = "PaymentPaid"

// PaymentPaidEvent is raised when a payment notification settles a payment
type PaymentPaidEvent struct {
	shared.BaseDomainEvent
	OrderID         int64           `json:"order_id"`
	Amount          decimal.Decimal `json:"amount"`
	MerchantTradeNo string          `json:"merchant_trade_no"`
	TradeNo         string          `json:"trade_no"`
}

// NewPaymentPaidEvent builds the event for a settled payment
func NewPaymentPaidEvent(p *Payment) *PaymentPaidEvent {
	return &PaymentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentPaid, "Payment", p.ID),
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		MerchantTradeNo: p.MerchantTradeNo,
		TradeNo:         p.TradeNo,
	}
}
