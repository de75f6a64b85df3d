package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/logistics"
	"gorm.io/gorm"
)

// GormShipmentMethodRepository implements ShipmentMethodRepository using GORM
type GormShipmentMethodRepository struct {
	gormRepository[logistics.ShipmentMethod]
}

// NewGormShipmentMethodRepository creates a new GormShipmentMethodRepository
func NewGormShipmentMethodRepository(db *gorm.DB) *GormShipmentMethodRepository {
	return &GormShipmentMethodRepository{gormRepository: newGormRepository[logistics.ShipmentMethod](db)}
}

func (r *GormShipmentMethodRepository) FindByName(ctx context.Context, name string) (*logistics.ShipmentMethod, error) {
	return r.findOneBy(ctx, "name", name)
}

func (r *GormShipmentMethodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// GormShipmentStatusRepository implements ShipmentStatusRepository using GORM
type GormShipmentStatusRepository struct {
	gormRepository[logistics.ShipmentStatus]
}

// NewGormShipmentStatusRepository creates a new GormShipmentStatusRepository
func NewGormShipmentStatusRepository(db *gorm.DB) *GormShipmentStatusRepository {
	return &GormShipmentStatusRepository{gormRepository: newGormRepository[logistics.ShipmentStatus](db)}
}

func (r *GormShipmentStatusRepository) FindByName(ctx context.Context, name string) (*logistics.ShipmentStatus, error) {
	return r.findOneBy(ctx, "name", name)
}

func (r *GormShipmentStatusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	gormRepository[logistics.Shipment]
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{gormRepository: newGormRepository[logistics.Shipment](db)}
}

func (r *GormShipmentRepository) FindByOrderID(ctx context.Context, orderID int64) ([]logistics.Shipment, error) {
	return r.findBy(ctx, "order_id", orderID)
}

func (r *GormShipmentRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	return r.existsBy(ctx, "order_id", orderID)
}

func (r *GormShipmentRepository) ExistsByShipmentMethodID(ctx context.Context, methodID int64) (bool, error) {
	return r.existsBy(ctx, "shipment_method_id", methodID)
}

func (r *GormShipmentRepository) ExistsByShipmentStatusID(ctx context.Context, statusID int64) (bool, error) {
	return r.existsBy(ctx, "shipment_status_id", statusID)
}

var (
	_ logistics.ShipmentMethodRepository = (*GormShipmentMethodRepository)(nil)
	_ logistics.ShipmentStatusRepository = (*GormShipmentStatusRepository)(nil)
	_ logistics.ShipmentRepository       = (*GormShipmentRepository)(nil)
)
