package support

import (
	"time"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/support"
)

// CreateChatMessageRequest represents a message sent between a user and a shop
type CreateChatMessageRequest struct {
	ShopID  int64  `json:"shopId" binding:"required"`
	UserID  int64  `json:"userId" binding:"required"`
	Sender  string `json:"sender" binding:"required,oneof=user shop"`
	Content string `json:"content" binding:"required,max=2000"`
}

// UpdateChatMessageRequest edits a message or toggles its read flag
type UpdateChatMessageRequest struct {
	Content shared.Optional[string] `json:"content" binding:"omitempty,min=1,max=2000" swaggertype:"string"`
	Read    shared.Optional[bool]   `json:"read" swaggertype:"boolean"`
}

// ChatMessageResponse represents a chat message in API responses
type ChatMessageResponse struct {
	ID        int64      `json:"id"`
	ShopID    int64      `json:"shopId"`
	UserID    int64      `json:"userId"`
	Sender    string     `json:"sender"`
	Content   string     `json:"content"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToChatMessageResponse converts a domain ChatMessage
func ToChatMessageResponse(m *support.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID,
		ShopID:    m.ShopID,
		UserID:    m.UserID,
		Sender:    string(m.Sender),
		Content:   m.Content,
		Read:      m.ReadAt != nil,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToChatMessageResponses converts a list of chat messages
func ToChatMessageResponses(messages []support.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, len(messages))
	for i := range messages {
		out[i] = ToChatMessageResponse(&messages[i])
	}
	return out
}
