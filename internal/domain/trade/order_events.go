package trade

import (
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventTypeOrderCreated is published after an order is persisted
const EventTypeOrderCreated = "OrderCreated"

// OrderCreatedEvent is raised when a user places an order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	UserID int64           `json:"user_id"`
	ShopID int64           `json:"shop_id"`
	Total  decimal.Decimal `json:"total"`
	Items  int             `json:"items"`
}

// NewOrderCreatedEvent builds the event for a persisted order
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		UserID:          o.UserID,
		ShopID:          o.ShopID,
		Total:           o.Total,
		Items:           len(o.Items),
	}
}
