package memory

import (
	"encoding/json"
	"sync"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// orderHistoryRepositoryInMemory — in-memory реализация OrderHistoryRepository.
type orderHistoryRepositoryInMemory struct {
	mu        sync.RWMutex
	histories map[string][]json.RawMessage
}

// NewOrderHistoryRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewOrderHistoryRepository() domain.OrderHistoryRepository {
	return &orderHistoryRepositoryInMemory{
		histories: make(map[string][]json.RawMessage),
	}
}

// Append дописывает заказ под блокировкой: создание документа и
// дописывание — одна операция, как у атомарного upsert+append в БД.
func (r *orderHistoryRepositoryInMemory) Append(name string, order json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	stored := make(json.RawMessage, len(order))
	copy(stored, order)
	r.histories[name] = append(r.histories[name], stored)
	return nil
}

// Find возвращает документ истории или ErrHistoryNotFound.
func (r *orderHistoryRepositoryInMemory) Find(name string) (domain.OrderHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders, ok := r.histories[name]
	if !ok {
		return domain.OrderHistory{}, domain.ErrHistoryNotFound
	}

	history := domain.OrderHistory{
		Name:    name,
		History: make([]json.RawMessage, len(orders)),
	}
	copy(history.History, orders)
	return history, nil
}

var _ domain.OrderHistoryRepository = (*orderHistoryRepositoryInMemory)(nil)
