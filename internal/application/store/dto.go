package store

import (
	"time"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopspring/decimal"
)

// CreateShopRequest represents a request to open a shop
type CreateShopRequest struct {
	OwnerID     int64  `json:"ownerId" binding:"required"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=5000"`
	LogoKey     string `json:"logoKey" binding:"max=255"`
}

// UpdateShopRequest represents a request to update a shop. The owner cannot be changed.
type UpdateShopRequest struct {
	Name        shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=100" swaggertype:"string"`
	Description shared.Optional[string] `json:"description" binding:"omitempty,max=5000" swaggertype:"string"`
	LogoKey     shared.Optional[string] `json:"logoKey" binding:"omitempty,max=255" swaggertype:"string"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoKey     string    `json:"logoKey,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCouponRequest represents a request to issue a coupon
type CreateCouponRequest struct {
	ShopID      int64           `json:"shopId" binding:"required"`
	Code        string          `json:"code" binding:"required,max=32"`
	Description string          `json:"description" binding:"max=255"`
	Discount    decimal.Decimal `json:"discount" binding:"required" swaggertype:"string"`
	MinSpend    decimal.Decimal `json:"minSpend" swaggertype:"string"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	ValidFrom   time.Time       `json:"validFrom" binding:"required"`
	ValidUntil  time.Time       `json:"validUntil" binding:"required"`
}

// UpdateCouponRequest represents a request to update a coupon. The shop and code cannot be changed.
type UpdateCouponRequest struct {
	Description shared.Optional[string]          `json:"description" binding:"omitempty,max=255" swaggertype:"string"`
	Discount    shared.Optional[decimal.Decimal] `json:"discount" swaggertype:"string"`
	MinSpend    shared.Optional[decimal.Decimal] `json:"minSpend" swaggertype:"string"`
	Quantity    shared.Optional[int]             `json:"quantity" binding:"omitempty,min=0" swaggertype:"integer"`
	ValidFrom   shared.Optional[time.Time]       `json:"validFrom" swaggertype:"string"`
	ValidUntil  shared.Optional[time.Time]       `json:"validUntil" swaggertype:"string"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID          int64           `json:"id"`
	ShopID      int64           `json:"shopId"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount" swaggertype:"string"`
	MinSpend    decimal.Decimal `json:"minSpend" swaggertype:"string"`
	Quantity    int             `json:"quantity"`
	ValidFrom   time.Time       `json:"validFrom"`
	ValidUntil  time.Time       `json:"validUntil"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToShopResponse converts a domain Shop to ShopResponse
func ToShopResponse(s *store.Shop) ShopResponse {
	return ShopResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		LogoKey:     s.LogoKey,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToCouponResponse converts a domain Coupon to CouponResponse
func ToCouponResponse(c *store.Coupon) CouponResponse {
	return CouponResponse{
		ID:          c.ID,
		ShopID:      c.ShopID,
		Code:        c.Code,
		Description: c.Description,
		Discount:    c.Discount,
		MinSpend:    c.MinSpend,
		Quantity:    c.Quantity,
		ValidFrom:   c.ValidFrom,
		ValidUntil:  c.ValidUntil,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCouponResponses converts a slice of coupons
func ToCouponResponses(coupons []store.Coupon) []CouponResponse {
	responses := make([]CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = ToCouponResponse(&coupons[i])
	}
	return responses
}

func applyShopUpdate(s *store.Shop, req UpdateShopRequest) error {
	if name, ok := req.Name.Get(); ok {
		if err := s.SetName(name); err != nil {
			return err
		}
	}
	req.Description.ApplyOrClear(&s.Description)
	req.LogoKey.ApplyOrClear(&s.LogoKey)
	return nil
}

func applyCouponUpdate(c *store.Coupon, req UpdateCouponRequest) error {
	req.Description.ApplyOrClear(&c.Description)
	if req.Discount.IsSet() || req.MinSpend.IsSet() {
		discount, minSpend := c.Discount, c.MinSpend
		req.Discount.ApplyTo(&discount)
		req.MinSpend.ApplyTo(&minSpend)
		if err := c.SetAmounts(discount, minSpend); err != nil {
			return err
		}
	}
	if quantity, ok := req.Quantity.Get(); ok {
		if err := c.SetQuantity(quantity); err != nil {
			return err
		}
	}
	req.ValidFrom.ApplyTo(&c.ValidFrom)
	req.ValidUntil.ApplyTo(&c.ValidUntil)
	return c.Validate()
}
