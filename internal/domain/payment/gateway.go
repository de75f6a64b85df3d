package payment

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway errors
var (
	ErrInvalidSignature   = errors.New("payment gateway: CheckMacValue mismatch")
	ErrGatewayUnavailable = errors.New("payment gateway: unavailable")
	ErrGatewayRejected    = errors.New("payment gateway: request rejected")
)

// CheckoutRequest describes a payment to be settled in the gateway's hosted page
type CheckoutRequest struct {
	MerchantTradeNo string
	Amount          decimal.Decimal
	TradeDate       time.Time
	ItemName        string
	Description     string
}

// CheckoutForm is a signed HTML form the browser submits to the gateway
type CheckoutForm struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

// Notification is a verified server-to-server payment result
type Notification struct {
	MerchantTradeNo string
	TradeNo         string
	ReturnCode      int
	ReturnMessage   string
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Simulated       bool
}

// Succeeded reports whether the gateway reported a successful payment
func (n *Notification) Succeeded() bool {
	return n.ReturnCode == 1
}

// TradeInfo is the gateway's own record of a trade
type TradeInfo struct {
	MerchantTradeNo string
	TradeNo         string
	Status          string
	Amount          decimal.Decimal
}

// IsPaid reports whether the gateway considers the trade paid
func (t *TradeInfo) IsPaid() bool {
	return t.Status == "1"
}

// Gateway is the port to the external payment provider
type Gateway interface {
	// Checkout builds the signed checkout form for a payment
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutForm, error)

	// VerifyNotification checks the signature of a notification and parses it.
	// It returns ErrInvalidSignature when the signature does not match.
	VerifyNotification(ctx context.Context, form url.Values) (*Notification, error)

	// QueryTrade asks the gateway for the current state of a trade
	QueryTrade(ctx context.Context, merchantTradeNo string) (*TradeInfo, error)
}
