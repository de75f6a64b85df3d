package payment

import (
	"context"
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
)

// PaymentMethod is a way to pay, e.g. credit card or ATM transfer
type PaymentMethod struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_method_name"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// PaymentStatus is a lookup row describing the state of a payment
type PaymentStatus struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_status_name"`
}

// TableName returns the table name for GORM
func (PaymentStatus) TableName() string {
	return "payment_statuses"
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

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	shared.Repository[PaymentMethod]

	FindByName(ctx context.Context, name string) (*PaymentMethod, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// PaymentStatusRepository defines the interface for payment status persistence
type PaymentStatusRepository interface {
	shared.Repository[PaymentStatus]

	FindByName(ctx context.Context, name string) (*PaymentStatus, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
