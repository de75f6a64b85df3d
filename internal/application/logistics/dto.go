package logistics

import (
	"time"

	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateShipmentMethodRequest represents a request to add a delivery option
type CreateShipmentMethodRequest struct {
	Name string          `json:"name" binding:"required,max=50"`
	Fee  decimal.Decimal `json:"fee" swaggertype:"string"`
}

// UpdateShipmentMethodRequest represents a request to update a delivery option
type UpdateShipmentMethodRequest struct {
	Name shared.Optional[string]          `json:"name" binding:"omitempty,min=1,max=50" swaggertype:"string"`
	Fee  shared.Optional[decimal.Decimal] `json:"fee" swaggertype:"string"`
}

// ShipmentMethodResponse represents a delivery option in API responses
type ShipmentMethodResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Fee       decimal.Decimal `json:"fee" swaggertype:"string"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateShipmentStatusRequest represents a request to add a shipment status
type CreateShipmentStatusRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// UpdateShipmentStatusRequest represents a request to rename a shipment status
type UpdateShipmentStatusRequest struct {
	Name shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=50" swaggertype:"string"`
}

// ShipmentStatusResponse represents a shipment status in API responses
type ShipmentStatusResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateShipmentRequest represents a request to ship an order
type CreateShipmentRequest struct {
	OrderID          int64  `json:"orderId" binding:"required"`
	ShipmentMethodID int64  `json:"shipmentMethodId" binding:"required"`
	ShipmentStatusID int64  `json:"shipmentStatusId" binding:"required"`
	TrackingNumber   string `json:"trackingNumber" binding:"max=64"`
}

// UpdateShipmentRequest represents a request to update a shipment.
// The order and the method are fixed once the shipment exists.
type UpdateShipmentRequest struct {
	ShipmentStatusID shared.Optional[int64]  `json:"shipmentStatusId" swaggertype:"integer"`
	TrackingNumber   shared.Optional[string] `json:"trackingNumber" binding:"omitempty,max=64" swaggertype:"string"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID               int64     `json:"id"`
	OrderID          int64     `json:"orderId"`
	ShipmentMethodID int64     `json:"shipmentMethodId"`
	ShipmentStatusID int64     `json:"shipmentStatusId"`
	TrackingNumber   string    `json:"trackingNumber"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToShipmentMethodResponse converts a domain ShipmentMethod
func ToShipmentMethodResponse(m *logistics.ShipmentMethod) ShipmentMethodResponse {
	return ShipmentMethodResponse{ID: m.ID, Name: m.Name, Fee: m.Fee, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// ToShipmentStatusResponse converts a domain ShipmentStatus
func ToShipmentStatusResponse(s *logistics.ShipmentStatus) ShipmentStatusResponse {
	return ShipmentStatusResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

// ToShipmentResponse converts a domain Shipment
func ToShipmentResponse(s *logistics.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:               s.ID,
		OrderID:          s.OrderID,
		ShipmentMethodID: s.ShipmentMethodID,
		ShipmentStatusID: s.ShipmentStatusID,
		TrackingNumber:   s.TrackingNumber,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func convert[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
