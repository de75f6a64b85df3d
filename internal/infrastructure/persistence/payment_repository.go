package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/payment"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	gormRepository[payment.PaymentMethod]
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{gormRepository: newGormRepository[payment.PaymentMethod](db)}
}

func (r *GormPaymentMethodRepository) FindByName(ctx context.Context, name string) (*payment.PaymentMethod, error) {
	return r.findOneBy(ctx, "name", name)
}

func (r *GormPaymentMethodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// GormPaymentStatusRepository implements PaymentStatusRepository using GORM
type GormPaymentStatusRepository struct {
	gormRepository[payment.PaymentStatus]
}

// NewGormPaymentStatusRepository creates a new GormPaymentStatusRepository
func NewGormPaymentStatusRepository(db *gorm.DB) *GormPaymentStatusRepository {
	return &GormPaymentStatusRepository{gormRepository: newGormRepository[payment.PaymentStatus](db)}
}

func (r *GormPaymentStatusRepository) FindByName(ctx context.Context, name string) (*payment.PaymentStatus, error) {
	return r.findOneBy(ctx, "name", name)
}

func (r *GormPaymentStatusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	gormRepository[payment.Payment]
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{gormRepository: newGormRepository[payment.Payment](db)}
}

func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]payment.Payment, error) {
	return r.findBy(ctx, "order_id", orderID)
}

// FindByMerchantTradeNoForUpdate finds the payment a gateway notification refers to and
// locks its row while the notification settles it
func (r *GormPaymentRepository) FindByMerchantTradeNoForUpdate(ctx context.Context, merchantTradeNo string) (*payment.Payment, error) {
	return r.findOneForUpdate(ctx, "merchant_trade_no", merchantTradeNo)
}

func (r *GormPaymentRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	return r.existsBy(ctx, "order_id", orderID)
}

func (r *GormPaymentRepository) ExistsByPaymentMethodID(ctx context.Context, methodID int64) (bool, error) {
	return r.existsBy(ctx, "payment_method_id", methodID)
}

func (r *GormPaymentRepository) ExistsByPaymentStatusID(ctx context.Context, statusID int64) (bool, error) {
	return r.existsBy(ctx, "payment_status_id", statusID)
}

var (
	_ payment.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
	_ payment.PaymentStatusRepository = (*GormPaymentStatusRepository)(nil)
	_ payment.PaymentRepository       = (*GormPaymentRepository)(nil)
)
