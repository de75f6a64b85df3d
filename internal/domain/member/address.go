package member

import (
	"context"
	"strings"

	"github.com/shopmall/backend/internal/domain/shared"
)

// UserAddress is a delivery address belonging to a user
type UserAddress struct {
	shared.BaseEntity
	UserID        int64  `gorm:"not null;index"`
	RecipientName string `gorm:"type:varchar(100);not null"`
	Phone         string `gorm:"type:varchar(30);not null"`
	City          string `gorm:"type:varchar(50);not null"`
	District      string `gorm:"type:varchar(50)"`
	Street        string `gorm:"type:varchar(255);not null"`
	PostalCode    string `gorm:"type:varchar(10)"`
	IsDefault     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserAddress) TableName() string {
	return "user_addresses"
}

// Validate checks the required address lines
func (a *UserAddress) Validate() error {
	if strings.TrimSpace(a.RecipientName) == "" {
		return shared.NewValidationError("recipient name cannot be empty")
	}
	if strings.TrimSpace(a.Phone) == "" {
		return shared.NewValidationError("phone cannot be empty")
	}
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Street) == "" {
		return shared.NewValidationError("city and street are required")
	}
	return nil
}

// FullAddress joins the address lines for display and shipping labels
func (a *UserAddress) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.PostalCode, a.City, a.District, a.Street} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// UserAddressRepository defines the interface for address persistence
type UserAddressRepository interface {
	shared.Repository[UserAddress]

	FindByUserID(ctx context.Context, userID int64) ([]UserAddress, error)
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)

	// ClearDefault unsets the default flag on every address of the user except keepID
	ClearDefault(ctx context.Context, userID, keepID int64) error
}
