package logistics

import (
	"context"
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShipmentMethod is a delivery option, e.g. home delivery or convenience store pickup
type ShipmentMethod struct {
	shared.BaseEntity
	Name string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_shipment_method_name"`
	Fee  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShipmentMethod) TableName() string {
	return "shipment_methods"
}

// ShipmentStatus is a lookup row describing where a shipment is
type ShipmentStatus struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_shipment_status_name"`
}

// TableName returns the table name for GORM
func (ShipmentStatus) TableName() string {
	return "shipment_statuses"
}

// ValidateLookupName checks a lookup-table name
func ValidateLookupName(name string) error {
	if name == "" {
		return shared.NewValidationError("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 50 {
		return shared.NewValidationError("name cannot exceed 50 characters")
	}
	return nil
}

// ValidateFee checks a shipping fee
func ValidateFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewValidationError("fee cannot be negative")
	}
	return nil
}

// ShipmentMethodRepository defines the interface for shipment method persistence
type ShipmentMethodRepository interface {
	shared.Repository[ShipmentMethod]

	FindByName(ctx context.Context, name string) (*ShipmentMethod, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ShipmentStatusRepository defines the interface for shipment status persistence
type ShipmentStatusRepository interface {
	shared.Repository[ShipmentStatus]

	FindByName(ctx context.Context, name string) (*ShipmentStatus, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
