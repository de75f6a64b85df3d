package store

import (
	"context"
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
)

// Shop is a storefront owned by a user
type Shop struct {
	shared.BaseEntity
	OwnerID     int64  `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_shop_name"`
	Description string `gorm:"type:text"`
	LogoKey     string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(ownerID int64, name, description string) (*Shop, error) {
	s := &Shop{OwnerID: ownerID, Description: description}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	return s, nil
}

// SetName validates and sets the shop name
func (s *Shop) SetName(name string) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewValidationError("shop name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewValidationError("shop name cannot exceed 100 characters")
	}
	s.Name = name
	return nil
}

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	shared.Repository[Shop]

	FindByName(ctx context.Context, name string) (*Shop, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	FindByOwnerID(ctx context.Context, ownerID int64) ([]Shop, error)
	ExistsByOwnerID(ctx context.Context, ownerID int64) (bool, error)
}
