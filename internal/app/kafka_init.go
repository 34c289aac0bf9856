package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/messaging/kafka"
)

// eventPublishing объединяет producer и доменные издатели событий.
// Без брокеров оба издателя — nil-интерфейсы: типизированный nil за
// интерфейсом выглядел бы как живой publisher.
type eventPublishing struct {
	producer *kafka.Producer

	Orders domain.OrderEventPublisher
	Users  domain.UserEventPublisher
}

// initEventPublishing поднимает публикацию событий, если задан список
// брокеров. Ошибка подключения не фатальна: сервис работает без Kafka.
func initEventPublishing(brokers, orderTopic string, logger *log.Entry) *eventPublishing {
	ep := &eventPublishing{}
	if brokers == "" {
		return ep
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return ep
	}

	if orderTopic == "" {
		orderTopic = kafka.DefaultOrderTopic
	}
	ep.producer = producer
	ep.Orders = kafka.NewOrderPublisher(producer, orderTopic)
	ep.Users = kafka.NewUserPublisher(producer, kafka.DefaultUserTopic)

	logger.WithField("brokers", brokerList).
		WithField("order_topic", orderTopic).
		Info("kafka event publishing initialized")
	return ep
}

// Close закрывает producer, если он был создан.
func (ep *eventPublishing) Close(logger *log.Entry) {
	if ep == nil || ep.producer == nil {
		return
	}

	if err := ep.producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
