package payment

import (
	"time"

	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateLookupRequest adds a payment method or status
type CreateLookupRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// UpdateLookupRequest renames a payment method or status
type UpdateLookupRequest struct {
	Name shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=50" swaggertype:"string"`
}

// LookupResponse represents a payment method or status in API responses
type LookupResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePaymentRequest represents a request to start paying an order.
// The amount is always taken from the order total.
type CreatePaymentRequest struct {
	OrderID         int64 `json:"orderId" binding:"required"`
	PaymentMethodID int64 `json:"paymentMethodId" binding:"required"`
	PaymentStatusID int64 `json:"paymentStatusId" binding:"required"`
}

// UpdatePaymentRequest moves a payment to another status
type UpdatePaymentRequest struct {
	PaymentStatusID shared.Optional[int64] `json:"paymentStatusId" swaggertype:"integer"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"orderId"`
	PaymentMethodID int64           `json:"paymentMethodId"`
	PaymentStatusID int64           `json:"paymentStatusId"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	MerchantTradeNo string          `json:"merchantTradeNo"`
	TradeNo         string          `json:"tradeNo,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CheckoutResponse is the signed form the browser posts to the gateway
type CheckoutResponse struct {
	PaymentID       int64             `json:"paymentId"`
	MerchantTradeNo string            `json:"merchantTradeNo"`
	Action          string            `json:"action"`
	Method          string            `json:"method"`
	Fields          map[string]string `json:"fields"`
}

// ToPaymentMethodResponse converts a domain PaymentMethod
func ToPaymentMethodResponse(m *payment.PaymentMethod) LookupResponse {
	return LookupResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// ToPaymentStatusResponse converts a domain PaymentStatus
func ToPaymentStatusResponse(s *payment.PaymentStatus) LookupResponse {
	return LookupResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

// ToPaymentResponse converts a domain Payment
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		OrderID:         p.OrderID,
		PaymentMethodID: p.PaymentMethodID,
		PaymentStatusID: p.PaymentStatusID,
		Amount:          p.Amount,
		MerchantTradeNo: p.MerchantTradeNo,
		TradeNo:         p.TradeNo,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func convert[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
