package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Gateway acknowledgements
const (
	NotifyAckOK     = "1|OK"
	notifyAckPrefix = "0|Error: "
)

const defaultIdempotencyTTL = 24 * time.Hour

// Notification errors
var (
	ErrNotifyInvalidSignature = errors.New("invalid CheckMacValue")
	ErrNotifyUnknownTrade     = errors.New("unknown MerchantTradeNo")
	ErrNotifyTradeUnconfirmed = errors.New("trade not confirmed by gateway")
	ErrNotifyAmountMismatch   = errors.New("trade amount does not match payment")
)

// NotifyAck formats the plain-text answer the gateway expects
func NotifyAck(err error) string {
	if err == nil {
		return NotifyAckOK
	}
	return notifyAckPrefix + err.Error()
}

// NotifyConfig selects the statuses a notification moves payments to
type NotifyConfig struct {
	PaidStatusID   int64
	FailedStatusID int64
	IdempotencyTTL time.Duration
}

// NotifyService settles payments from gateway notifications
type NotifyService struct {
	gateway     payment.Gateway
	scope       uow.TransactionScope
	idempotency shared.IdempotencyStore
	publisher   shared.EventPublisher
	cfg         NotifyConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewNotifyService creates a new NotifyService
func NewNotifyService(
	gateway payment.Gateway,
	scope uow.TransactionScope,
	idempotency shared.IdempotencyStore,
	publisher shared.EventPublisher,
	cfg NotifyConfig,
	logger *zap.Logger,
) *NotifyService {
	if publisher == nil {
		publisher = shared.NoopEventPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}
	return &NotifyService{
		gateway:     gateway,
		scope:       scope,
		idempotency: idempotency,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleNotification verifies a notification, confirms the trade with the gateway
// and records the outcome on the payment. Redelivered notifications are acknowledged
// without touching the payment again.
func (s *NotifyService) HandleNotification(ctx context.Context, form url.Values) error {
	if s.gateway == nil {
		return ErrGatewayNotConfigured
	}
	n, err := s.gateway.VerifyNotification(ctx, form)
	if err != nil {
		s.logger.Warn("Payment notification rejected", zap.Error(err))
		if errors.Is(err, payment.ErrInvalidSignature) {
			return ErrNotifyInvalidSignature
		}
		return err
	}

	key := n.MerchantTradeNo + ":" + n.TradeNo
	processed, err := s.idempotency.IsProcessed(ctx, key)
	if err != nil {
		return fmt.Errorf("idempotency check failed: %w", err)
	}
	if processed {
		s.logger.Info("Payment notification already processed", zap.String("idempotency_key", key))
		return nil
	}

	var trade *payment.TradeInfo
	if n.Succeeded() {
		if trade, err = s.confirm(ctx, n.MerchantTradeNo); err != nil {
			s.logger.Warn("Payment notification not confirmed",
				zap.String("merchant_trade_no", n.MerchantTradeNo),
				zap.Error(err))
			return err
		}
	}

	var settled *payment.Payment
	var paid bool
	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		p, err := repos.Payments().FindByMerchantTradeNoForUpdate(ctx, n.MerchantTradeNo)
		if err != nil {
			if shared.IsNotFound(err) {
				return ErrNotifyUnknownTrade
			}
			return err
		}
		if p.IsPaid() {
			return nil
		}

		if trade == nil {
			p.MarkFailed(s.cfg.FailedStatusID, n.TradeNo)
			settled = p
			return repos.Payments().Save(ctx, p)
		}

		if !trade.Amount.Equal(p.Amount.Round(0)) {
			return ErrNotifyAmountMismatch
		}
		paidAt := n.PaymentDate
		if paidAt.IsZero() {
			paidAt = s.now()
		}
		p.MarkPaid(s.cfg.PaidStatusID, n.TradeNo, paidAt)
		settled, paid = p, true
		return repos.Payments().Save(ctx, p)
	})
	if err != nil {
		s.logger.Error("Failed to settle payment notification",
			zap.String("merchant_trade_no", n.MerchantTradeNo),
			zap.Error(err))
		return err
	}

	if _, err := s.idempotency.MarkProcessed(ctx, key, s.cfg.IdempotencyTTL); err != nil {
		s.logger.Warn("Failed to mark payment notification processed",
			zap.String("idempotency_key", key),
			zap.Error(err))
	}
	if settled == nil {
		return nil
	}

	s.logger.Info("Payment notification settled",
		zap.Int64("payment_id", settled.ID),
		zap.String("merchant_trade_no", settled.MerchantTradeNo),
		zap.Bool("paid", paid),
		zap.Bool("simulated", n.Simulated))

	if paid {
		if err := s.publisher.Publish(ctx, payment.NewPaymentPaidEvent(settled)); err != nil {
			s.logger.Error("Failed to publish payment events",
				zap.Int64("payment_id", settled.ID),
				zap.Error(err))
		}
	}
	return nil
}

// confirm asks the gateway whether the trade was really paid
func (s *NotifyService) confirm(ctx context.Context, merchantTradeNo string) (*payment.TradeInfo, error) {
	info, err := s.gateway.QueryTrade(ctx, merchantTradeNo)
	if err != nil {
		return nil, fmt.Errorf("query trade %s: %w", merchantTradeNo, err)
	}
	if !info.IsPaid() {
		return nil, ErrNotifyTradeUnconfirmed
	}
	return info, nil
}
