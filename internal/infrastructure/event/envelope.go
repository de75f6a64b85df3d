package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/trade"
)

// Envelope is the JSON document written to the event topic
type Envelope struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   int64           `json:"aggregate_id"`
	Payload       json.RawMessage `json:"payload"`
}

// Key partitions events by aggregate so that events of one order stay ordered
func (e *Envelope) Key() string {
	return e.AggregateType + ":" + strconv.FormatInt(e.AggregateID, 10)
}

// Serializer converts domain events to envelopes and back
type Serializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewSerializer creates a serializer that knows the shop's event types
func NewSerializer() *Serializer {
	s := &Serializer{registry: make(map[string]reflect.Type)}
	s.Register(trade.EventTypeOrderCreated, &trade.OrderCreatedEvent{})
	s.Register(payment.EventTypePaymentPaid, &payment.PaymentPaidEvent{})
	return s
}

// Register maps an event type to its Go type for decoding
func (s *Serializer) Register(eventType string, instance shared.DomainEvent) {
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.mu.Lock()
	s.registry[eventType] = t
	s.mu.Unlock()
}

// Encode wraps an event into an envelope and marshals it
func (s *Serializer) Encode(event shared.DomainEvent) (*Envelope, []byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}
	env := &Envelope{
		ID:            event.EventID(),
		Type:          event.EventType(),
		OccurredAt:    event.OccurredAt(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		Payload:       payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return env, data, nil
}

// Decode parses an envelope and its payload into the registered event type
func (s *Serializer) Decode(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	s.mu.RLock()
	t, ok := s.registry[env.Type]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", env.Type)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", env.Type, err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("%s does not implement DomainEvent", t)
	}
	return event, nil
}
