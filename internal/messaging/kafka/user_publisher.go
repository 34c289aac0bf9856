package kafka

import (
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// UserPublisher адаптирует Producer под доменный порт UserEventPublisher.
type UserPublisher struct {
	producer *Producer
	topic    string
}

// NewUserPublisher создаёт publisher событий учётных записей.
func NewUserPublisher(producer *Producer, topic string) *UserPublisher {
	if topic == "" {
		topic = DefaultUserTopic
	}
	return &UserPublisher{producer: producer, topic: topic}
}

// UserRegistered публикует событие о новой учётной записи; ключ —
// имя пользователя.
func (p *UserPublisher) UserRegistered(name string) error {
	return p.producer.PublishEvent(p.topic, name, NewUserRegisteredEvent(name))
}

var _ domain.UserEventPublisher = (*UserPublisher)(nil)
