package trade

import (
	"time"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested order line. The unit price is taken from the product.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	UserID    int64              `json:"userId" binding:"required"`
	ShopID    int64              `json:"shopId" binding:"required"`
	AddressID int64              `json:"addressId" binding:"required"`
	CouponID  *int64             `json:"couponId"`
	Note      string             `json:"note" binding:"max=500"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest represents a request to update an order.
// Only the note can change once an order is placed.
type UpdateOrderRequest struct {
	Note shared.Optional[string] `json:"note" binding:"omitempty,max=500" swaggertype:"string"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"userId"`
	ShopID    int64               `json:"shopId"`
	AddressID int64               `json:"addressId"`
	CouponID  *int64              `json:"couponId"`
	Note      string              `json:"note"`
	Subtotal  decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	Discount  decimal.Decimal     `json:"discount" swaggertype:"string"`
	Total     decimal.Decimal     `json:"total" swaggertype:"string"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount(),
		}
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		ShopID:    o.ShopID,
		AddressID: o.AddressID,
		CouponID:  o.CouponID,
		Note:      o.Note,
		Subtotal:  o.Subtotal,
		Discount:  o.Discount,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
