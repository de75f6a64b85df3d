package support

import (
	"context"
	"time"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/shopmall/backend/internal/domain/support"
)

const (
	entityChatMessage = "chat message"
	entityShop        = "shop"
	entityUser        = "user"
)

// ChatMessageService manages the customer-service conversations between users and shops
type ChatMessageService struct {
	messages support.ChatMessageRepository
	shops    store.ShopRepository
	users    member.UserRepository
	scope    uow.TransactionScope
	now      func() time.Time
}

// NewChatMessageService creates a new ChatMessageService
func NewChatMessageService(
	messages support.ChatMessageRepository,
	shops store.ShopRepository,
	users member.UserRepository,
	scope uow.TransactionScope,
) *ChatMessageService {
	return &ChatMessageService{messages: messages, shops: shops, users: users, scope: scope, now: time.Now}
}

// GetAll returns every chat message
func (s *ChatMessageService) GetAll(ctx context.Context) ([]ChatMessageResponse, error) {
	messages, err := s.messages.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToChatMessageResponses(messages), nil
}

// GetByID retrieves a chat message by ID
func (s *ChatMessageService) GetByID(ctx context.Context, id int64) (*ChatMessageResponse, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityChatMessage, id)
	}
	resp := ToChatMessageResponse(m)
	return &resp, nil
}

// GetByShop lists every message a shop sent or received
func (s *ChatMessageService) GetByShop(ctx context.Context, shopID int64) ([]ChatMessageResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, shopID); err != nil {
		return nil, err
	}
	messages, err := s.messages.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToChatMessageResponses(messages), nil
}

// GetByUser lists every message a user sent or received
func (s *ChatMessageService) GetByUser(ctx context.Context, userID int64) ([]ChatMessageResponse, error) {
	if err := integrity.RequireFound(ctx, s.users.ExistsByID, entityUser, userID); err != nil {
		return nil, err
	}
	messages, err := s.messages.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToChatMessageResponses(messages), nil
}

// GetByShopAndUser returns one conversation, oldest message first
func (s *ChatMessageService) GetByShopAndUser(ctx context.Context, shopID, userID int64) ([]ChatMessageResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, shopID); err != nil {
		return nil, err
	}
	if err := integrity.RequireFound(ctx, s.users.ExistsByID, entityUser, userID); err != nil {
		return nil, err
	}
	messages, err := s.messages.FindByShopIDAndUserID(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	return ToChatMessageResponses(messages), nil
}

// Create posts a message into the conversation of a shop and a user
func (s *ChatMessageService) Create(ctx context.Context, req CreateChatMessageRequest) (*ChatMessageResponse, error) {
	m, err := support.NewChatMessage(req.ShopID, req.UserID, support.Sender(req.Sender), req.Content)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Shops().ExistsByID, entityShop, req.ShopID); err != nil {
			return err
		}
		if err := integrity.RequireReference(ctx, repos.Users().ExistsByID, entityUser, req.UserID); err != nil {
			return err
		}
		return repos.ChatMessages().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	resp := ToChatMessageResponse(m)
	return &resp, nil
}

// Update edits the content of a message or marks it read or unread
func (s *ChatMessageService) Update(ctx context.Context, id int64, req UpdateChatMessageRequest) (*ChatMessageResponse, error) {
	var m *support.ChatMessage
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		m, err = repos.ChatMessages().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityChatMessage, id)
		}
		if content, ok := req.Content.Get(); ok {
			if err := m.SetContent(content); err != nil {
				return err
			}
		}
		if read, ok := req.Read.Get(); ok {
			m.MarkRead(read, s.now())
		}
		return repos.ChatMessages().Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	resp := ToChatMessageResponse(m)
	return &resp, nil
}

// Delete removes a chat message
func (s *ChatMessageService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.ChatMessages().ExistsByID, entityChatMessage, id); err != nil {
			return err
		}
		return repos.ChatMessages().Delete(ctx, id)
	})
}
