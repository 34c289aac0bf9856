package memory

import (
	"sync"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// userRepositoryInMemory — простая in-memory реализация UserRepository.
type userRepositoryInMemory struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
}

// NewUserRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		users: make(map[string]domain.User),
	}
}

// Exists сообщает, занято ли имя.
func (r *userRepositoryInMemory) Exists(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[name]
	return ok, nil
}

// Create сохраняет пользователя; проверка занятости и вставка выполняются
// под одной блокировкой, как это делает ограничение уникальности в БД.
func (r *userRepositoryInMemory) Create(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Name]; exists {
		return domain.ErrNameExists
	}
	r.users[user.Name] = user
	r.order = append(r.order, user.Name)
	return nil
}

// FindByName возвращает пользователя или ErrUserNotFound.
func (r *userRepositoryInMemory) FindByName(name string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[name]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

// All возвращает пользователей в порядке регистрации.
func (r *userRepositoryInMemory) All() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, name := range r.order {
		users = append(users, r.users[name])
	}
	return users, nil
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
