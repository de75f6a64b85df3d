package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/support"
	"gorm.io/gorm"
)

// GormChatMessageRepository implements ChatMessageRepository using GORM
type GormChatMessageRepository struct {
	gormRepository[support.ChatMessage]
}

// NewGormChatMessageRepository creates a new GormChatMessageRepository
func NewGormChatMessageRepository(db *gorm.DB) *GormChatMessageRepository {
	return &GormChatMessageRepository{gormRepository: newGormRepository[support.ChatMessage](db)}
}

func (r *GormChatMessageRepository) FindByShopID(ctx context.Context, shopID int64) ([]support.ChatMessage, error) {
	return r.findBy(ctx, "shop_id", shopID)
}

func (r *GormChatMessageRepository) FindByUserID(ctx context.Context, userID int64) ([]support.ChatMessage, error) {
	return r.findBy(ctx, "user_id", userID)
}

// FindByShopIDAndUserID returns one conversation, oldest message first
func (r *GormChatMessageRepository) FindByShopIDAndUserID(ctx context.Context, shopID, userID int64) ([]support.ChatMessage, error) {
	var messages []support.ChatMessage
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *GormChatMessageRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return r.existsBy(ctx, "shop_id", shopID)
}

func (r *GormChatMessageRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	return r.existsBy(ctx, "user_id", userID)
}

var _ support.ChatMessageRepository = (*GormChatMessageRepository)(nil)
