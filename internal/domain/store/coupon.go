package store

import (
	"context"
	"strings"
	"time"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Coupon is a fixed-amount discount issued by a shop
type Coupon struct {
	shared.BaseEntity
	ShopID      int64           `gorm:"not null;index"`
	Code        string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_coupon_code"`
	Description string          `gorm:"type:varchar(255)"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinSpend    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Quantity    int             `gorm:"not null;default:0"`
	ValidFrom   time.Time       `gorm:"not null"`
	ValidUntil  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon for a shop
func NewCoupon(shopID int64, code string, discount, minSpend decimal.Decimal, quantity int, validFrom, validUntil time.Time) (*Coupon, error) {
	c := &Coupon{
		ShopID:     shopID,
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
	if c.Code == "" {
		return nil, shared.NewValidationError("coupon code cannot be empty")
	}
	if err := c.SetAmounts(discount, minSpend); err != nil {
		return nil, err
	}
	if err := c.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetAmounts validates and sets the discount and the minimum spend
func (c *Coupon) SetAmounts(discount, minSpend decimal.Decimal) error {
	if !discount.IsPositive() {
		return shared.NewValidationError("coupon discount must be positive")
	}
	if minSpend.IsNegative() {
		return shared.NewValidationError("coupon minimum spend cannot be negative")
	}
	c.Discount = discount.Round(2)
	c.MinSpend = minSpend.Round(2)
	return nil
}

// SetQuantity validates and sets the number of coupons still available
func (c *Coupon) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("coupon quantity cannot be negative")
	}
	c.Quantity = quantity
	return nil
}

// Validate checks invariants spanning several fields
func (c *Coupon) Validate() error {
	if !c.ValidUntil.After(c.ValidFrom) {
		return shared.NewValidationError("coupon validUntil must be after validFrom")
	}
	return nil
}

// IsActiveAt reports whether the coupon can be redeemed at t
func (c *Coupon) IsActiveAt(t time.Time) bool {
	return c.Quantity > 0 && !t.Before(c.ValidFrom) && t.Before(c.ValidUntil)
}

// Redeem consumes one coupon. It fails when the coupon is exhausted or outside its validity window.
func (c *Coupon) Redeem(at time.Time) error {
	if !c.IsActiveAt(at) {
		return shared.NewConflictError("coupon is not redeemable: " + c.Code)
	}
	c.Quantity--
	return nil
}

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	shared.Repository[Coupon]

	FindByCode(ctx context.Context, code string) (*Coupon, error)
	// FindByIDForUpdate loads the coupon with a row lock held until the transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*Coupon, error)
	FindByShopID(ctx context.Context, shopID int64) ([]Coupon, error)
	ExistsByShopID(ctx context.Context, shopID int64) (bool, error)
}
