package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment records the settlement of one order through a payment gateway
type Payment struct {
	shared.BaseEntity
	OrderID         int64           `gorm:"not null;index"`
	PaymentMethodID int64           `gorm:"not null;index"`
	PaymentStatusID int64           `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MerchantTradeNo string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_payment_merchant_trade_no"`
	TradeNo         string          `gorm:"type:varchar(20)"`
	PaidAt          *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewMerchantTradeNo returns a unique 20 character alphanumeric trade number
func NewMerchantTradeNo() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20])
}

// MarkPaid records a successful gateway settlement
func (p *Payment) MarkPaid(paidStatusID int64, tradeNo string, paidAt time.Time) {
	p.PaymentStatusID = paidStatusID
	p.TradeNo = tradeNo
	p.PaidAt = &paidAt
}

// MarkFailed records a failed gateway settlement
func (p *Payment) MarkFailed(failedStatusID int64, tradeNo string) {
	p.PaymentStatusID = failedStatusID
	p.TradeNo = tradeNo
}

// IsPaid reports whether the gateway confirmed the payment
func (p *Payment) IsPaid() bool {
	return p.PaidAt != nil
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	shared.Repository[Payment]

	FindByOrderID(ctx context.Context, orderID int64) ([]Payment, error)
	// FindByMerchantTradeNoForUpdate loads the payment with a row lock held until the transaction ends
	FindByMerchantTradeNoForUpdate(ctx context.Context, merchantTradeNo string) (*Payment, error)

	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
	ExistsByPaymentMethodID(ctx context.Context, methodID int64) (bool, error)
	ExistsByPaymentStatusID(ctx context.Context, statusID int64) (bool, error)
}
