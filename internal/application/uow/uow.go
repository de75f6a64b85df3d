// Package uow defines the transaction boundary used by application services.
package uow

import (
	"context"

	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/support"
	"github.com/shopmall/backend/internal/domain/trade"
)

// Repositories gives access to every repository bound to the same transaction
type Repositories interface {
	ParentCategories() catalog.ParentCategoryRepository
	ChildCategories() catalog.ChildCategoryRepository
	Products() catalog.ProductRepository
	Shops() store.ShopRepository
	Coupons() store.CouponRepository
	Users() member.UserRepository
	UserAddresses() member.UserAddressRepository
	Orders() trade.OrderRepository
	ShipmentMethods() logistics.ShipmentMethodRepository
	ShipmentStatuses() logistics.ShipmentStatusRepository
	Shipments() logistics.ShipmentRepository
	PaymentMethods() payment.PaymentMethodRepository
	PaymentStatuses() payment.PaymentStatusRepository
	Payments() payment.PaymentRepository
	ChatMessages() support.ChatMessageRepository
}

// TransactionScope runs fn inside one database transaction.
// If fn returns an error the transaction is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// RepositorySet is a plain Repositories implementation holding one repository per family
type RepositorySet struct {
	ParentCategoryRepo catalog.ParentCategoryRepository
	ChildCategoryRepo  catalog.ChildCategoryRepository
	ProductRepo        catalog.ProductRepository
	ShopRepo           store.ShopRepository
	CouponRepo         store.CouponRepository
	UserRepo           member.UserRepository
	UserAddressRepo    member.UserAddressRepository
	OrderRepo          trade.OrderRepository
	ShipmentMethodRepo logistics.ShipmentMethodRepository
	ShipmentStatusRepo logistics.ShipmentStatusRepository
	ShipmentRepo       logistics.ShipmentRepository
	PaymentMethodRepo  payment.PaymentMethodRepository
	PaymentStatusRepo  payment.PaymentStatusRepository
	PaymentRepo        payment.PaymentRepository
	ChatMessageRepo    support.ChatMessageRepository
}

func (s *RepositorySet) ParentCategories() catalog.ParentCategoryRepository   { return s.ParentCategoryRepo }
func (s *RepositorySet) ChildCategories() catalog.ChildCategoryRepository     { return s.ChildCategoryRepo }
func (s *RepositorySet) Products() catalog.ProductRepository                  { return s.ProductRepo }
func (s *RepositorySet) Shops() store.ShopRepository                          { return s.ShopRepo }
func (s *RepositorySet) Coupons() store.CouponRepository                      { return s.CouponRepo }
func (s *RepositorySet) Users() member.UserRepository                         { return s.UserRepo }
func (s *RepositorySet) UserAddresses() member.UserAddressRepository          { return s.UserAddressRepo }
func (s *RepositorySet) Orders() trade.OrderRepository                        { return s.OrderRepo }
func (s *RepositorySet) ShipmentMethods() logistics.ShipmentMethodRepository  { return s.ShipmentMethodRepo }
func (s *RepositorySet) ShipmentStatuses() logistics.ShipmentStatusRepository { return s.ShipmentStatusRepo }
func (s *RepositorySet) Shipments() logistics.ShipmentRepository              { return s.ShipmentRepo }
func (s *RepositorySet) PaymentMethods() payment.PaymentMethodRepository      { return s.PaymentMethodRepo }
func (s *RepositorySet) PaymentStatuses() payment.PaymentStatusRepository     { return s.PaymentStatusRepo }
func (s *RepositorySet) Payments() payment.PaymentRepository                  { return s.PaymentRepo }
func (s *RepositorySet) ChatMessages() support.ChatMessageRepository          { return s.ChatMessageRepo }

// DirectScope runs fn against a fixed repository set without opening a transaction.
// Service tests use it with mocked repositories.
type DirectScope struct {
	Repos Repositories
}

// Execute implements TransactionScope
func (s DirectScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}

var (
	_ Repositories     = (*RepositorySet)(nil)
	_ TransactionScope = DirectScope{}
)
