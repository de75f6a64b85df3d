package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// SeedUser inserts a customer. The password hash is a placeholder, so the user cannot log in.
func (s *Store) SeedUser(t *testing.T) *member.User {
	t.Helper()
	u := &member.User{
		Username:     "user_" + gofakeit.LetterN(12),
		PasswordHash: "-",
		DisplayName:  gofakeit.Name(),
		Email:        gofakeit.Email(),
		Role:         member.RoleCustomer,
	}
	require.NoError(t, s.Repos.Users().Save(context.Background(), u))
	return u
}

// SeedAddress inserts an address for userID
func (s *Store) SeedAddress(t *testing.T, userID int64) *member.UserAddress {
	t.Helper()
	a := &member.UserAddress{
		UserID:        userID,
		RecipientName: gofakeit.Name(),
		Phone:         gofakeit.Phone(),
		City:          gofakeit.City(),
		Street:        gofakeit.Street(),
		PostalCode:    gofakeit.Zip(),
	}
	require.NoError(t, s.Repos.UserAddresses().Save(context.Background(), a))
	return a
}

// SeedShop inserts a shop owned by ownerID
func (s *Store) SeedShop(t *testing.T, ownerID int64) *store.Shop {
	t.Helper()
	shop, err := store.NewShop(ownerID, gofakeit.Company()+" "+gofakeit.LetterN(6), gofakeit.Sentence(8))
	require.NoError(t, err)
	require.NoError(t, s.Repos.Shops().Save(context.Background(), shop))
	return shop
}

// SeedProduct inserts a product of shopID
func (s *Store) SeedProduct(t *testing.T, shopID int64, price string, stock int, childCategoryIDs ...int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shopID, gofakeit.ProductName(), decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	p.ChildCategoryIDs = childCategoryIDs
	require.NoError(t, s.Repos.Products().Save(context.Background(), p))
	return p
}

// SeedParentCategory inserts a first-level category
func (s *Store) SeedParentCategory(t *testing.T, name string) *catalog.ParentCategory {
	t.Helper()
	c, err := catalog.NewParentCategory(name)
	require.NoError(t, err)
	require.NoError(t, s.Repos.ParentCategories().Save(context.Background(), c))
	return c
}

// SeedChildCategory inserts a second-level category under parentIDs
func (s *Store) SeedChildCategory(t *testing.T, name string, parentIDs ...int64) *catalog.ChildCategory {
	t.Helper()
	c, err := catalog.NewChildCategory(name, parentIDs)
	require.NoError(t, err)
	require.NoError(t, s.Repos.ChildCategories().Save(context.Background(), c))
	return c
}

// SeedCoupon inserts a coupon of shopID that is valid from an hour ago for a week
func (s *Store) SeedCoupon(t *testing.T, shopID int64, discount, minSpend string, quantity int) *store.Coupon {
	t.Helper()
	now := time.Now()
	c, err := store.NewCoupon(shopID, gofakeit.LetterN(10), decimal.RequireFromString(discount),
		decimal.RequireFromString(minSpend), quantity, now.Add(-time.Hour), now.Add(7*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.Repos.Coupons().Save(context.Background(), c))
	return c
}

// SeedOrder inserts an order of one line for productID
func (s *Store) SeedOrder(t *testing.T, userID, shopID, addressID, productID int64) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(userID, shopID, addressID, []trade.OrderItem{
		{ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	}, "")
	require.NoError(t, err)
	require.NoError(t, s.Repos.Orders().Save(context.Background(), o))
	return o
}

// SeedShipmentMethod inserts a shipment method
func (s *Store) SeedShipmentMethod(t *testing.T, name string) *logistics.ShipmentMethod {
	t.Helper()
	m := &logistics.ShipmentMethod{Name: name, Fee: decimal.NewFromInt(60)}
	require.NoError(t, s.Repos.ShipmentMethods().Save(context.Background(), m))
	return m
}

// SeedShipmentStatus inserts a shipment status
func (s *Store) SeedShipmentStatus(t *testing.T, name string) *logistics.ShipmentStatus {
	t.Helper()
	st := &logistics.ShipmentStatus{Name: name}
	require.NoError(t, s.Repos.ShipmentStatuses().Save(context.Background(), st))
	return st
}

// SeedPaymentMethod inserts a payment method
func (s *Store) SeedPaymentMethod(t *testing.T, name string) *payment.PaymentMethod {
	t.Helper()
	m := &payment.PaymentMethod{Name: name}
	require.NoError(t, s.Repos.PaymentMethods().Save(context.Background(), m))
	return m
}

// SeedPaymentStatus inserts a payment status
func (s *Store) SeedPaymentStatus(t *testing.T, name string) *payment.PaymentStatus {
	t.Helper()
	st := &payment.PaymentStatus{Name: name}
	require.NoError(t, s.Repos.PaymentStatuses().Save(context.Background(), st))
	return st
}

// RecordingPublisher is an EventPublisher that keeps every event in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	Err    error
}

// Publish implements shared.EventPublisher
func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.Err
}

// Events returns a copy of the published events
func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// EventTypes returns the types of the published events in order
func (p *RecordingPublisher) EventTypes() []string {
	events := p.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}
