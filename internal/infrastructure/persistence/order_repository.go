package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
// Items are preloaded on every read and written only when the order is created.
type GormOrderRepository struct {
	gormRepository[trade.Order]
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{gormRepository: newGormRepository[trade.Order](db)}
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	})
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	var order trade.Order
	if err := r.withItems(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindAll returns every order with its items
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]trade.Order, error) {
	var orders []trade.Order
	if err := r.withItems(ctx).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllByID returns the orders with the given IDs
func (r *GormOrderRepository) FindAllByID(ctx context.Context, ids []int64) ([]trade.Order, error) {
	orders := make([]trade.Order, 0, len(ids))
	if len(ids) == 0 {
		return orders, nil
	}
	if err := r.withItems(ctx).Where("id IN ?", ids).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID int64) ([]trade.Order, error) {
	return r.findWithItemsBy(ctx, "user_id", userID)
}

func (r *GormOrderRepository) FindByShopID(ctx context.Context, shopID int64) ([]trade.Order, error) {
	return r.findWithItemsBy(ctx, "shop_id", shopID)
}

func (r *GormOrderRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	return r.existsBy(ctx, "user_id", userID)
}

func (r *GormOrderRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return r.existsBy(ctx, "shop_id", shopID)
}

func (r *GormOrderRepository) ExistsByAddressID(ctx context.Context, addressID int64) (bool, error) {
	return r.existsBy(ctx, "address_id", addressID)
}

func (r *GormOrderRepository) ExistsByCouponID(ctx context.Context, couponID int64) (bool, error) {
	return r.existsBy(ctx, "coupon_id", couponID)
}

// ExistsByProductID checks if any order line references the product
func (r *GormOrderRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trade.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates an order together with its items, or updates the order row alone
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	db := r.db.WithContext(ctx)
	if order.IsNew() {
		return translateError(db.Create(order).Error)
	}
	return translateError(db.Omit(clause.Associations).Save(order).Error)
}

// Delete removes the order items and then the order row
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&trade.OrderItem{}).Error; err != nil {
		return translateError(err)
	}
	return r.gormRepository.Delete(ctx, id)
}

func (r *GormOrderRepository) findWithItemsBy(ctx context.Context, column string, value any) ([]trade.Order, error) {
	var orders []trade.Order
	if err := r.withItems(ctx).Where(column+" = ?", value).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
