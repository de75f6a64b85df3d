package catalog

import (
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is an item sold by a shop
type Product struct {
	shared.BaseEntity
	ShopID           int64           `gorm:"not null;index"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Description      string          `gorm:"type:text"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock            int             `gorm:"not null;default:0"`
	ImageKey         string          `gorm:"type:varchar(255)"`
	ChildCategoryIDs []int64         `gorm:"-"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductChildCategory is a row of the product/child category join table
type ProductChildCategory struct {
	ProductID       int64 `gorm:"primaryKey"`
	ChildCategoryID int64 `gorm:"primaryKey;index"`
}

// TableName returns the table name for GORM
func (ProductChildCategory) TableName() string {
	return "product_child_categories"
}

// NewProduct creates a new product for a shop
func NewProduct(shopID int64, name string, price decimal.Decimal, stock int) (*Product, error) {
	p := &Product{ShopID: shopID}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// SetName validates and sets the product name
func (p *Product) SetName(name string) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewValidationError("product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewValidationError("product name cannot exceed 100 characters")
	}
	p.Name = name
	return nil
}

// SetPrice validates and sets the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("product price cannot be negative")
	}
	p.Price = price.Round(2)
	return nil
}

// SetStock validates and sets the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewValidationError("product stock cannot be negative")
	}
	p.Stock = stock
	return nil
}

// Reserve takes quantity units out of stock
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewConflictError("insufficient stock for product: " + p.Name)
	}
	p.Stock -= quantity
	return nil
}
