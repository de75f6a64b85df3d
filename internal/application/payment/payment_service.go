package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ErrGatewayNotConfigured is returned by Checkout when no payment gateway is wired
var ErrGatewayNotConfigured = errors.New("payment gateway is not configured")

// PaymentService records payments and prepares gateway checkouts
type PaymentService struct {
	payments payment.PaymentRepository
	orders   trade.OrderRepository
	scope    uow.TransactionScope
	gateway  payment.Gateway
	itemName string
	logger   *zap.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService. gateway may be nil, in which case Checkout fails.
func NewPaymentService(
	payments payment.PaymentRepository,
	orders trade.OrderRepository,
	scope uow.TransactionScope,
	gateway payment.Gateway,
	itemName string,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments: payments,
		orders:   orders,
		scope:    scope,
		gateway:  gateway,
		itemName: itemName,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAll returns every payment
func (s *PaymentService) GetAll(ctx context.Context) ([]PaymentResponse, error) {
	payments, err := s.payments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(payments, ToPaymentResponse), nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id int64) (*PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityPayment, id)
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// GetByOrder lists the payments of an order
func (s *PaymentService) GetByOrder(ctx context.Context, orderID int64) ([]PaymentResponse, error) {
	if err := integrity.RequireFound(ctx, s.orders.ExistsByID, entityOrder, orderID); err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return convert(payments, ToPaymentResponse), nil
}

// Create opens a payment for the full order total
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	p := &payment.Payment{
		OrderID:         req.OrderID,
		PaymentMethodID: req.PaymentMethodID,
		PaymentStatusID: req.PaymentStatusID,
		MerchantTradeNo: payment.NewMerchantTradeNo(),
	}
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		order, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return integrity.MissingReference(err, entityOrder, req.OrderID)
		}
		if err := integrity.RequireReference(ctx, repos.PaymentMethods().ExistsByID, entityPaymentMethod, req.PaymentMethodID); err != nil {
			return err
		}
		if err := integrity.RequireReference(ctx, repos.PaymentStatuses().ExistsByID, entityPaymentStatus, req.PaymentStatusID); err != nil {
			return err
		}

		existing, err := repos.Payments().FindByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].IsPaid() {
				return shared.NewConflictError(fmt.Sprintf("order %d is already paid", order.ID))
			}
		}

		p.Amount = order.Total
		return repos.Payments().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// Update moves a payment to another status
func (s *PaymentService) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (*PaymentResponse, error) {
	var p *payment.Payment
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		p, err = repos.Payments().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityPayment, id)
		}
		statusID, ok := req.PaymentStatusID.Get()
		if !ok {
			return nil
		}
		if err := integrity.RequireReference(ctx, repos.PaymentStatuses().ExistsByID, entityPaymentStatus, statusID); err != nil {
			return err
		}
		p.PaymentStatusID = statusID
		return repos.Payments().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Payments().ExistsByID, entityPayment, id); err != nil {
			return err
		}
		return repos.Payments().Delete(ctx, id)
	})
}

// Checkout builds the signed gateway form for an unpaid payment
func (s *PaymentService) Checkout(ctx context.Context, id int64) (*CheckoutResponse, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityPayment, id)
	}
	if p.IsPaid() {
		return nil, shared.NewConflictError(fmt.Sprintf("payment %d is already paid", id))
	}

	itemName := s.itemName
	if itemName == "" {
		itemName = fmt.Sprintf("Order #%d", p.OrderID)
	}
	form, err := s.gateway.Checkout(ctx, payment.CheckoutRequest{
		MerchantTradeNo: p.MerchantTradeNo,
		Amount:          p.Amount,
		TradeDate:       s.now(),
		ItemName:        itemName,
		Description:     fmt.Sprintf("Order #%d", p.OrderID),
	})
	if err != nil {
		if errors.Is(err, payment.ErrGatewayRejected) {
			return nil, shared.NewValidationError(err.Error())
		}
		return nil, fmt.Errorf("failed to build checkout for payment %d: %w", id, err)
	}

	s.logger.Info("Checkout prepared",
		zap.Int64("payment_id", p.ID),
		zap.String("merchant_trade_no", p.MerchantTradeNo),
		zap.String("amount", p.Amount.String()))

	return &CheckoutResponse{
		PaymentID:       p.ID,
		MerchantTradeNo: p.MerchantTradeNo,
		Action:          form.Action,
		Method:          form.Method,
		Fields:          form.Fields,
	}, nil
}
