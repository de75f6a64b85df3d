package support

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
)

// Sender identifies which side of a conversation wrote a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderShop Sender = "shop"
)

// MaxMessageLength is the maximum number of characters in one message
const MaxMessageLength = 2000

// ChatMessage is one message of the customer-service conversation between a user and a shop
type ChatMessage struct {
	shared.BaseEntity
	ShopID  int64  `gorm:"not null;index:idx_chat_shop_user,priority:1"`
	UserID  int64  `gorm:"not null;index:idx_chat_shop_user,priority:2;index"`
	Sender  Sender `gorm:"type:varchar(10);not null"`
	Content string `gorm:"type:text;not null"`
	ReadAt  *time.Time
}

// TableName returns the table name for GORM
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// NewChatMessage creates a message in the conversation between shopID and userID
func NewChatMessage(shopID, userID int64, sender Sender, content string) (*ChatMessage, error) {
	if sender != SenderUser && sender != SenderShop {
		return nil, shared.NewValidationError("sender must be user or shop")
	}
	m := &ChatMessage{ShopID: shopID, UserID: userID, Sender: sender}
	if err := m.SetContent(content); err != nil {
		return nil, err
	}
	return m, nil
}

// SetContent validates and sets the message body
func (m *ChatMessage) SetContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return shared.NewValidationError("message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return shared.NewValidationError("message content cannot exceed 2000 characters")
	}
	m.Content = content
	return nil
}

// MarkRead sets or clears the read timestamp
func (m *ChatMessage) MarkRead(read bool, at time.Time) {
	if !read {
		m.ReadAt = nil
		return
	}
	if m.ReadAt == nil {
		m.ReadAt = &at
	}
}

// ChatMessageRepository defines the interface for chat message persistence.
// List queries return messages oldest first.
type ChatMessageRepository interface {
	shared.Repository[ChatMessage]

	FindByShopID(ctx context.Context, shopID int64) ([]ChatMessage, error)
	FindByUserID(ctx context.Context, userID int64) ([]ChatMessage, error)
	FindByShopIDAndUserID(ctx context.Context, shopID, userID int64) ([]ChatMessage, error)

	ExistsByShopID(ctx context.Context, shopID int64) (bool, error)
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
}
