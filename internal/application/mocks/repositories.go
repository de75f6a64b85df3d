// Package mocks provides testify mocks of the domain repositories for service tests.
package mocks

import (
	"context"
	"net/url"
	"time"

	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/support"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

func typed[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// Repository mocks the id-based operations every repository has.
// Calls are recorded under explicit method names.
type Repository[T any] struct {
	mock.Mock
}

func (m *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	args := m.MethodCalled("FindByID", ctx, id)
	return typed[*T](args, 0), args.Error(1)
}

func (m *Repository[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.MethodCalled("ExistsByID", ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	args := m.MethodCalled("FindAll", ctx)
	return typed[[]T](args, 0), args.Error(1)
}

func (m *Repository[T]) FindAllByID(ctx context.Context, ids []int64) ([]T, error) {
	args := m.MethodCalled("FindAllByID", ctx, ids)
	return typed[[]T](args, 0), args.Error(1)
}

func (m *Repository[T]) Save(ctx context.Context, entity *T) error {
	return m.MethodCalled("Save", ctx, entity).Error(0)
}

func (m *Repository[T]) Delete(ctx context.Context, id int64) error {
	return m.MethodCalled("Delete", ctx, id).Error(0)
}

func (m *Repository[T]) findOne(name string, ctx context.Context, arg any) (*T, error) {
	args := m.MethodCalled(name, ctx, arg)
	return typed[*T](args, 0), args.Error(1)
}

func (m *Repository[T]) findMany(name string, ctx context.Context, arg ...any) ([]T, error) {
	args := m.MethodCalled(name, append([]any{ctx}, arg...)...)
	return typed[[]T](args, 0), args.Error(1)
}

func (m *Repository[T]) exists(name string, ctx context.Context, arg any) (bool, error) {
	args := m.MethodCalled(name, ctx, arg)
	return args.Bool(0), args.Error(1)
}

// ParentCategoryRepository mocks catalog.ParentCategoryRepository
type ParentCategoryRepository struct {
	Repository[catalog.ParentCategory]
}

func (m *ParentCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.ParentCategory, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *ParentCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

// ChildCategoryRepository mocks catalog.ChildCategoryRepository
type ChildCategoryRepository struct {
	Repository[catalog.ChildCategory]
}

func (m *ChildCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.ChildCategory, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *ChildCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

func (m *ChildCategoryRepository) FindByParentID(ctx context.Context, parentID int64) ([]catalog.ChildCategory, error) {
	return m.findMany("FindByParentID", ctx, parentID)
}

func (m *ChildCategoryRepository) ExistsByParentID(ctx context.Context, parentID int64) (bool, error) {
	return m.exists("ExistsByParentID", ctx, parentID)
}

// ProductRepository mocks catalog.ProductRepository
type ProductRepository struct {
	Repository[catalog.Product]
}

func (m *ProductRepository) FindByShopID(ctx context.Context, shopID int64) ([]catalog.Product, error) {
	return m.findMany("FindByShopID", ctx, shopID)
}

func (m *ProductRepository) FindByChildCategoryID(ctx context.Context, id int64) ([]catalog.Product, error) {
	return m.findMany("FindByChildCategoryID", ctx, id)
}

func (m *ProductRepository) FindAllByIDForUpdate(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	return m.findMany("FindAllByIDForUpdate", ctx, ids)
}

func (m *ProductRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return m.exists("ExistsByShopID", ctx, shopID)
}

func (m *ProductRepository) ExistsByChildCategoryID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByChildCategoryID", ctx, id)
}

// ShopRepository mocks store.ShopRepository
type ShopRepository struct {
	Repository[store.Shop]
}

func (m *ShopRepository) FindByName(ctx context.Context, name string) (*store.Shop, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *ShopRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

func (m *ShopRepository) FindByOwnerID(ctx context.Context, ownerID int64) ([]store.Shop, error) {
	return m.findMany("FindByOwnerID", ctx, ownerID)
}

func (m *ShopRepository) ExistsByOwnerID(ctx context.Context, ownerID int64) (bool, error) {
	return m.exists("ExistsByOwnerID", ctx, ownerID)
}

// CouponRepository mocks store.CouponRepository
type CouponRepository struct {
	Repository[store.Coupon]
}

func (m *CouponRepository) FindByCode(ctx context.Context, code string) (*store.Coupon, error) {
	return m.findOne("FindByCode", ctx, code)
}

func (m *CouponRepository) FindByIDForUpdate(ctx context.Context, id int64) (*store.Coupon, error) {
	return m.findOne("FindByIDForUpdate", ctx, id)
}

func (m *CouponRepository) FindByShopID(ctx context.Context, shopID int64) ([]store.Coupon, error) {
	return m.findMany("FindByShopID", ctx, shopID)
}

func (m *CouponRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return m.exists("ExistsByShopID", ctx, shopID)
}

// UserRepository mocks member.UserRepository
type UserRepository struct {
	Repository[member.User]
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*member.User, error) {
	return m.findOne("FindByUsername", ctx, username)
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.exists("ExistsByUsername", ctx, username)
}

// UserAddressRepository mocks member.UserAddressRepository
type UserAddressRepository struct {
	Repository[member.UserAddress]
}

func (m *UserAddressRepository) FindByUserID(ctx context.Context, userID int64) ([]member.UserAddress, error) {
	return m.findMany("FindByUserID", ctx, userID)
}

func (m *UserAddressRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	return m.exists("ExistsByUserID", ctx, userID)
}

func (m *UserAddressRepository) ClearDefault(ctx context.Context, userID, keepID int64) error {
	return m.MethodCalled("ClearDefault", ctx, userID, keepID).Error(0)
}

// OrderRepository mocks trade.OrderRepository
type OrderRepository struct {
	Repository[trade.Order]
}

func (m *OrderRepository) FindByUserID(ctx context.Context, userID int64) ([]trade.Order, error) {
	return m.findMany("FindByUserID", ctx, userID)
}

func (m *OrderRepository) FindByShopID(ctx context.Context, shopID int64) ([]trade.Order, error) {
	return m.findMany("FindByShopID", ctx, shopID)
}

func (m *OrderRepository) ExistsByUserID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByUserID", ctx, id)
}

func (m *OrderRepository) ExistsByShopID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByShopID", ctx, id)
}

func (m *OrderRepository) ExistsByAddressID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByAddressID", ctx, id)
}

func (m *OrderRepository) ExistsByCouponID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByCouponID", ctx, id)
}

func (m *OrderRepository) ExistsByProductID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByProductID", ctx, id)
}

// ShipmentMethodRepository mocks logistics.ShipmentMethodRepository
type ShipmentMethodRepository struct {
	Repository[logistics.ShipmentMethod]
}

func (m *ShipmentMethodRepository) FindByName(ctx context.Context, name string) (*logistics.ShipmentMethod, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *ShipmentMethodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

// ShipmentStatusRepository mocks logistics.ShipmentStatusRepository
type ShipmentStatusRepository struct {
	Repository[logistics.ShipmentStatus]
}

func (m *ShipmentStatusRepository) FindByName(ctx context.Context, name string) (*logistics.ShipmentStatus, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *ShipmentStatusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

// ShipmentRepository mocks logistics.ShipmentRepository
type ShipmentRepository struct {
	Repository[logistics.Shipment]
}

func (m *ShipmentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]logistics.Shipment, error) {
	return m.findMany("FindByOrderID", ctx, orderID)
}

func (m *ShipmentRepository) ExistsByOrderID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByOrderID", ctx, id)
}

func (m *ShipmentRepository) ExistsByShipmentMethodID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByShipmentMethodID", ctx, id)
}

func (m *ShipmentRepository) ExistsByShipmentStatusID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByShipmentStatusID", ctx, id)
}

// PaymentMethodRepository mocks payment.PaymentMethodRepository
type PaymentMethodRepository struct {
	Repository[payment.PaymentMethod]
}

func (m *PaymentMethodRepository) FindByName(ctx context.Context, name string) (*payment.PaymentMethod, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *PaymentMethodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

// PaymentStatusRepository mocks payment.PaymentStatusRepository
type PaymentStatusRepository struct {
	Repository[payment.PaymentStatus]
}

func (m *PaymentStatusRepository) FindByName(ctx context.Context, name string) (*payment.PaymentStatus, error) {
	return m.findOne("FindByName", ctx, name)
}

func (m *PaymentStatusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.exists("ExistsByName", ctx, name)
}

// PaymentRepository mocks payment.PaymentRepository
type PaymentRepository struct {
	Repository[payment.Payment]
}

func (m *PaymentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]payment.Payment, error) {
	return m.findMany("FindByOrderID", ctx, orderID)
}

func (m *PaymentRepository) FindByMerchantTradeNoForUpdate(ctx context.Context, no string) (*payment.Payment, error) {
	return m.findOne("FindByMerchantTradeNoForUpdate", ctx, no)
}

func (m *PaymentRepository) ExistsByOrderID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByOrderID", ctx, id)
}

func (m *PaymentRepository) ExistsByPaymentMethodID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByPaymentMethodID", ctx, id)
}

func (m *PaymentRepository) ExistsByPaymentStatusID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByPaymentStatusID", ctx, id)
}

// ChatMessageRepository mocks support.ChatMessageRepository
type ChatMessageRepository struct {
	Repository[support.ChatMessage]
}

func (m *ChatMessageRepository) FindByShopID(ctx context.Context, shopID int64) ([]support.ChatMessage, error) {
	return m.findMany("FindByShopID", ctx, shopID)
}

func (m *ChatMessageRepository) FindByUserID(ctx context.Context, userID int64) ([]support.ChatMessage, error) {
	return m.findMany("FindByUserID", ctx, userID)
}

func (m *ChatMessageRepository) FindByShopIDAndUserID(ctx context.Context, shopID, userID int64) ([]support.ChatMessage, error) {
	return m.findMany("FindByShopIDAndUserID", ctx, shopID, userID)
}

func (m *ChatMessageRepository) ExistsByShopID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByShopID", ctx, id)
}

func (m *ChatMessageRepository) ExistsByUserID(ctx context.Context, id int64) (bool, error) {
	return m.exists("ExistsByUserID", ctx, id)
}

// Repos bundles one mock per family behind uow.Repositories
type Repos struct {
	ParentCategories *ParentCategoryRepository
	ChildCategories  *ChildCategoryRepository
	Products         *ProductRepository
	Shops            *ShopRepository
	Coupons          *CouponRepository
	Users            *UserRepository
	UserAddresses    *UserAddressRepository
	Orders           *OrderRepository
	ShipmentMethods  *ShipmentMethodRepository
	ShipmentStatuses *ShipmentStatusRepository
	Shipments        *ShipmentRepository
	PaymentMethods   *PaymentMethodRepository
	PaymentStatuses  *PaymentStatusRepository
	Payments         *PaymentRepository
	ChatMessages     *ChatMessageRepository
}

// NewRepos creates a fresh set of mocks
func NewRepos() *Repos {
	return &Repos{
		ParentCategories: new(ParentCategoryRepository),
		ChildCategories:  new(ChildCategoryRepository),
		Products:         new(ProductRepository),
		Shops:            new(ShopRepository),
		Coupons:          new(CouponRepository),
		Users:            new(UserRepository),
		UserAddresses:    new(UserAddressRepository),
		Orders:           new(OrderRepository),
		ShipmentMethods:  new(ShipmentMethodRepository),
		ShipmentStatuses: new(ShipmentStatusRepository),
		Shipments:        new(ShipmentRepository),
		PaymentMethods:   new(PaymentMethodRepository),
		PaymentStatuses:  new(PaymentStatusRepository),
		Payments:         new(PaymentRepository),
		ChatMessages:     new(ChatMessageRepository),
	}
}

// Set returns the mocks as a uow.RepositorySet
func (r *Repos) Set() *uow.RepositorySet {
	return &uow.RepositorySet{
		ParentCategoryRepo: r.ParentCategories,
		ChildCategoryRepo:  r.ChildCategories,
		ProductRepo:        r.Products,
		ShopRepo:           r.Shops,
		CouponRepo:         r.Coupons,
		UserRepo:           r.Users,
		UserAddressRepo:    r.UserAddresses,
		OrderRepo:          r.Orders,
		ShipmentMethodRepo: r.ShipmentMethods,
		ShipmentStatusRepo: r.ShipmentStatuses,
		ShipmentRepo:       r.Shipments,
		PaymentMethodRepo:  r.PaymentMethods,
		PaymentStatusRepo:  r.PaymentStatuses,
		PaymentRepo:        r.Payments,
		ChatMessageRepo:    r.ChatMessages,
	}
}

// Scope returns a transaction scope that runs against the mocks
func (r *Repos) Scope() uow.TransactionScope {
	return uow.DirectScope{Repos: r.Set()}
}

// EventPublisher mocks shared.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// IdempotencyStore mocks shared.IdempotencyStore
type IdempotencyStore struct {
	mock.Mock
}

func (m *IdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *IdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *IdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// PaymentGateway mocks payment.Gateway
type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) Checkout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutForm, error) {
	args := m.Called(ctx, req)
	return typed[*payment.CheckoutForm](args, 0), args.Error(1)
}

func (m *PaymentGateway) VerifyNotification(ctx context.Context, form url.Values) (*payment.Notification, error) {
	args := m.Called(ctx, form)
	return typed[*payment.Notification](args, 0), args.Error(1)
}

func (m *PaymentGateway) QueryTrade(ctx context.Context, merchantTradeNo string) (*payment.TradeInfo, error) {
	args := m.Called(ctx, merchantTradeNo)
	return typed[*payment.TradeInfo](args, 0), args.Error(1)
}
