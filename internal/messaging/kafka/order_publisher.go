package kafka

import (
	"encoding/json"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// OrderPublisher адаптирует Producer под доменный порт OrderEventPublisher.
type OrderPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderPublisher создаёт publisher событий заказов.
func NewOrderPublisher(producer *Producer, topic string) *OrderPublisher {
	if topic == "" {
		topic = DefaultOrderTopic
	}
	return &OrderPublisher{producer: producer, topic: topic}
}

// OrderAppended публикует событие о дописанном заказе; ключ — имя
// пользователя, чтобы события одного покупателя сохраняли порядок.
func (p *OrderPublisher) OrderAppended(name string, order json.RawMessage) error {
	return p.producer.PublishEvent(p.topic, name, NewOrderAppendedEvent(name, order))
}

var _ domain.OrderEventPublisher = (*OrderPublisher)(nil)
