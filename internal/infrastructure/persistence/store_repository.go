package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/store"
	"gorm.io/gorm"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	gormRepository[store.Shop]
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{gormRepository: newGormRepository[store.Shop](db)}
}

func (r *GormShopRepository) FindByName(ctx context.Context, name string) (*store.Shop, error) {
	return r.findOneBy(ctx, "name", name)
}

func (r *GormShopRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

func (r *GormShopRepository) FindByOwnerID(ctx context.Context, ownerID int64) ([]store.Shop, error) {
	return r.findBy(ctx, "owner_id", ownerID)
}

func (r *GormShopRepository) ExistsByOwnerID(ctx context.Context, ownerID int64) (bool, error) {
	return r.existsBy(ctx, "owner_id", ownerID)
}

// GormCouponRepository implements CouponRepository using GORM
type GormCouponRepository struct {
	gormRepository[store.Coupon]
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{gormRepository: newGormRepository[store.Coupon](db)}
}

// FindByCode finds a coupon by its (upper-case) code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*store.Coupon, error) {
	return r.findOneBy(ctx, "code", code)
}

// FindByIDForUpdate locks the coupon row so concurrent redemptions of the last unit queue
func (r *GormCouponRepository) FindByIDForUpdate(ctx context.Context, id int64) (*store.Coupon, error) {
	return r.findOneForUpdate(ctx, "id", id)
}

func (r *GormCouponRepository) FindByShopID(ctx context.Context, shopID int64) ([]store.Coupon, error) {
	return r.findBy(ctx, "shop_id", shopID)
}

func (r *GormCouponRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return r.existsBy(ctx, "shop_id", shopID)
}

var (
	_ store.ShopRepository   = (*GormShopRepository)(nil)
	_ store.CouponRepository = (*GormCouponRepository)(nil)
)
