package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/member"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	gormRepository[member.User]
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{gormRepository: newGormRepository[member.User](db)}
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*member.User, error) {
	return r.findOneBy(ctx, "username", username)
}

// ExistsByUsername checks if a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsBy(ctx, "username", username)
}

// GormUserAddressRepository implements UserAddressRepository using GORM
type GormUserAddressRepository struct {
	gormRepository[member.UserAddress]
}

// NewGormUserAddressRepository creates a new GormUserAddressRepository
func NewGormUserAddressRepository(db *gorm.DB) *GormUserAddressRepository {
	return &GormUserAddressRepository{gormRepository: newGormRepository[member.UserAddress](db)}
}

func (r *GormUserAddressRepository) FindByUserID(ctx context.Context, userID int64) ([]member.UserAddress, error) {
	return r.findBy(ctx, "user_id", userID)
}

func (r *GormUserAddressRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	return r.existsBy(ctx, "user_id", userID)
}

// ClearDefault unsets the default flag on every other address of the user
func (r *GormUserAddressRepository) ClearDefault(ctx context.Context, userID, keepID int64) error {
	return r.db.WithContext(ctx).Model(&member.UserAddress{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keepID, true).
		Update("is_default", false).Error
}

var (
	_ member.UserRepository        = (*GormUserRepository)(nil)
	_ member.UserAddressRepository = (*GormUserAddressRepository)(nil)
)
