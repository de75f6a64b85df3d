package logistics

import (
	"context"

	"github.com/shopmall/backend/internal/domain/shared"
)

// Shipment tracks the delivery of one order
type Shipment struct {
	shared.BaseEntity
	OrderID          int64  `gorm:"not null;index"`
	ShipmentMethodID int64  `gorm:"not null;index"`
	ShipmentStatusID int64  `gorm:"not null;index"`
	TrackingNumber   string `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	shared.Repository[Shipment]

	FindByOrderID(ctx context.Context, orderID int64) ([]Shipment, error)

	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
	ExistsByShipmentMethodID(ctx context.Context, methodID int64) (bool, error)
	ExistsByShipmentStatusID(ctx context.Context, statusID int64) (bool, error)
}
