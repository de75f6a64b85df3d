package trade

import (
	"context"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is a purchase placed by a user at one shop
type Order struct {
	shared.BaseEntity
	UserID    int64           `gorm:"not null;index"`
	ShopID    int64           `gorm:"not null;index"`
	AddressID int64           `gorm:"not null;index"`
	CouponID  *int64          `gorm:"index"`
	Note      string          `gorm:"type:varchar(500)"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. It is owned by the order and references the product by id.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns the line amount
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates an order and computes its subtotal
func NewOrder(userID, shopID, addressID int64, items []OrderItem, note string) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewValidationError("order must contain at least one item")
	}
	o := &Order{
		UserID:    userID,
		ShopID:    shopID,
		AddressID: addressID,
		Note:      note,
		Items:     items,
		Discount:  decimal.Zero,
	}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewValidationError("item quantity must be positive")
		}
		subtotal = subtotal.Add(item.Amount())
	}
	o.Subtotal = subtotal.Round(2)
	o.Total = o.Subtotal
	return o, nil
}

// ApplyCoupon applies a fixed discount. The order total never goes below zero.
func (o *Order) ApplyCoupon(couponID int64, discount, minSpend decimal.Decimal) error {
	if o.Subtotal.LessThan(minSpend) {
		return shared.NewValidationError("order subtotal does not reach the coupon minimum spend")
	}
	o.CouponID = &couponID
	o.Discount = decimal.Min(discount, o.Subtotal).Round(2)
	o.Total = o.Subtotal.Sub(o.Discount)
	return nil
}

// ProductIDs returns the product ids of the order lines
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// OrderRepository defines the interface for order persistence.
// Loaded orders carry their items.
type OrderRepository interface {
	shared.Repository[Order]

	FindByUserID(ctx context.Context, userID int64) ([]Order, error)
	FindByShopID(ctx context.Context, shopID int64) ([]Order, error)

	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
	ExistsByShopID(ctx context.Context, shopID int64) (bool, error)
	ExistsByAddressID(ctx context.Context, addressID int64) (bool, error)
	ExistsByCouponID(ctx context.Context, couponID int64) (bool, error)
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)
}
