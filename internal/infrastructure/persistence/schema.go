package persistence

import (
	"fmt"

	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/support"
	"github.com/shopmall/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order
func Models() []any {
	return []any{
		&member.User{},
		&member.UserAddress{},
		&catalog.ParentCategory{},
		&catalog.ChildCategory{},
		&catalog.ChildCategoryParent{},
		&store.Shop{},
		&catalog.Product{},
		&catalog.ProductChildCategory{},
		&store.Coupon{},
		&trade.Order{},
		&trade.OrderItem{},
		&logistics.ShipmentMethod{},
		&logistics.ShipmentStatus{},
		&logistics.Shipment{},
		&payment.PaymentMethod{},
		&payment.PaymentStatus{},
		&payment.Payment{},
		&support.ChatMessage{},
	}
}

// AutoMigrate creates the schema from the entity definitions. It serves the sqlite
// driver and tests; PostgreSQL deployments use the versioned SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate schema: %w", err)
	}
	return nil
}
