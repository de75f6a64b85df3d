package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/support"
	"github.com/shopmall/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories bound to one transaction on demand.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ParentCategories() catalog.ParentCategoryRepository {
	return NewGormParentCategoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) ChildCategories() catalog.ChildCategoryRepository {
	return NewGormChildCategoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Shops() store.ShopRepository {
	return NewGormShopRepository(r.tx)
}

func (r *gormTransactionalRepositories) Coupons() store.CouponRepository {
	return NewGormCouponRepository(r.tx)
}

func (r *gormTransactionalRepositories) Users() member.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) UserAddresses() member.UserAddressRepository {
	return NewGormUserAddressRepository(r.tx)
}

func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) ShipmentMethods() logistics.ShipmentMethodRepository {
	return NewGormShipmentMethodRepository(r.tx)
}

func (r *gormTransactionalRepositories) ShipmentStatuses() logistics.ShipmentStatusRepository {
	return NewGormShipmentStatusRepository(r.tx)
}

func (r *gormTransactionalRepositories) Shipments() logistics.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentMethods() payment.PaymentMethodRepository {
	return NewGormPaymentMethodRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentStatuses() payment.PaymentStatusRepository {
	return NewGormPaymentStatusRepository(r.tx)
}

func (r *gormTransactionalRepositories) Payments() payment.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) ChatMessages() support.ChatMessageRepository {
	return NewGormChatMessageRepository(r.tx)
}

// NewRepositorySet builds non-transactional repositories on db, for read paths.
func NewRepositorySet(db *gorm.DB) *uow.RepositorySet {
	return &uow.RepositorySet{
		ParentCategoryRepo: NewGormParentCategoryRepository(db),
		ChildCategoryRepo:  NewGormChildCategoryRepository(db),
		ProductRepo:        NewGormProductRepository(db),
		ShopRepo:           NewGormShopRepository(db),
		CouponRepo:         NewGormCouponRepository(db),
		UserRepo:           NewGormUserRepository(db),
		UserAddressRepo:    NewGormUserAddressRepository(db),
		OrderRepo:          NewGormOrderRepository(db),
		ShipmentMethodRepo: NewGormShipmentMethodRepository(db),
		ShipmentStatusRepo: NewGormShipmentStatusRepository(db),
		ShipmentRepo:       NewGormShipmentRepository(db),
		PaymentMethodRepo:  NewGormPaymentMethodRepository(db),
		PaymentStatusRepo:  NewGormPaymentStatusRepository(db),
		PaymentRepo:        NewGormPaymentRepository(db),
		ChatMessageRepo:    NewGormChatMessageRepository(db),
	}
}

var (
	_ uow.TransactionScope = (*GormTransactionScope)(nil)
	_ uow.Repositories     = (*gormTransactionalRepositories)(nil)
)
