// Пакет orders реализует агрегацию истории заказов: дописывание нового
// заказа в документ покупателя и чтение документа целиком.
package orders

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/metrics"
)

// Service координирует проверку пользователя, атомарное дописывание
// и публикацию события. Дописывание делегируется хранилищу одной
// операцией: чтения-модификации-записи на этом уровне нет, поэтому
// конкурентные вызовы по одному имени не теряют обновлений.
type Service struct {
	users     domain.UserRepository
	histories domain.OrderHistoryRepository
	publisher domain.OrderEventPublisher
	metrics   *metrics.ServiceMetrics
	logger    *log.Entry
}

// New конструирует сервис историй заказов.
// publisher и serviceMetrics могут быть nil.
func New(
	users domain.UserRepository,
	histories domain.OrderHistoryRepository,
	publisher domain.OrderEventPublisher,
	serviceMetrics *metrics.ServiceMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders")
	}
	return &Service{
		users:     users,
		histories: histories,
		publisher: publisher,
		metrics:   serviceMetrics,
		logger:    logger,
	}
}

// Append дописывает заказ в историю пользователя. Для несуществующего
// пользователя возвращает ErrUserNotFound, не создавая документа.
func (s *Service) Append(name string, order json.RawMessage) error {
	exists, err := s.users.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	if err := s.histories.Append(name, order); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderAppended()
	}
	s.logger.WithField("name", name).Info("order appended")

	// Публикация события не откатывает уже записанный заказ.
	if s.publisher != nil {
		if err := s.publisher.OrderAppended(name, order); err != nil {
			s.logger.WithError(err).WithField("name", name).
				Warn("failed to publish order event")
		}
	}
	return nil
}

// History возвращает документ истории или ErrHistoryNotFound.
func (s *Service) History(name string) (domain.OrderHistory, error) {
	return s.histories.Find(name)
}
