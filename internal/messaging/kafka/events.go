package kafka

import (
	"encoding/json"
	"time"
)

// EventType определяет тип события.
type EventType string

const (
	// EventTypeOrderAppended — заказ дописан в историю покупателя.
	EventTypeOrderAppended EventType = "order.appended"
	// EventTypeUserRegistered — зарегистрирована новая учётная запись.
	EventTypeUserRegistered EventType = "user.registered"
)

// DefaultOrderTopic — топик событий заказов по умолчанию.
const DefaultOrderTopic = "users.order.events"

// DefaultUserTopic — топик событий учётных записей по умолчанию.
const DefaultUserTopic = "users.account.events"

// OrderEvent представляет событие истории заказов.
type OrderEvent struct {
	EventType EventType       `json:"event_type"`
	Name      string          `json:"name"`
	Order     json.RawMessage `json:"order,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewOrderAppendedEvent создаёт событие о дописанном заказе.
func NewOrderAppendedEvent(name string, order json.RawMessage) *OrderEvent {
	return &OrderEvent{
		EventType: EventTypeOrderAppended,
		Name:      name,
		Order:     order,
		Timestamp: time.Now(),
	}
}

// UserEvent представляет событие учётной записи.
type UserEvent struct {
	EventType EventType `json:"event_type"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserRegisteredEvent создаёт событие о новой учётной записи.
func NewUserRegisteredEvent(name string) *UserEvent {
	return &UserEvent{
		EventType: EventTypeUserRegistered,
		Name:      name,
		Timestamp: time.Now(),
	}
}
