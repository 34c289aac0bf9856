// Пакет account реализует операции над учётными записями:
// регистрацию, вход, проверку существования и выборку.
package account

import (
	log "github.com/sirupsen/logrus"

	"github.com/Demystifier-git/Micro-service-E-commerce-Application-Deployed-on-AWS-EKS/internal/domain"
)

// Service — тонкий слой над UserRepository с валидацией входа.
type Service struct {
	users     domain.UserRepository
	publisher domain.UserEventPublisher
	logger    *log.Entry
}

// New конструирует сервис учётных записей. publisher может быть nil —
// тогда события регистрации не публикуются.
func New(users domain.UserRepository, publisher domain.UserEventPublisher, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "account")
	}
	return &Service{users: users, publisher: publisher, logger: logger}
}

// Register создаёт учётную запись. Предварительная проверка занятости
// имени — ранний выход; источник истины об уникальности — само
// хранилище (Create возвращает ErrNameExists при гонке).
func (s *Service) Register(name, password, email string) error {
	user := domain.User{Name: name, Password: password, Email: email}
	if err := user.ValidateForRegister(); err != nil {
		return err
	}

	exists, err := s.users.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrNameExists
	}

	if err := s.users.Create(user); err != nil {
		return err
	}

	s.logger.WithField("name", name).Info("user registered")

	// Учётная запись уже создана: сбой публикации не откатывает её.
	if s.publisher != nil {
		if err := s.publisher.UserRegistered(name); err != nil {
			s.logger.WithError(err).WithField("name", name).
				Warn("failed to publish user registered event")
		}
	}
	return nil
}

// Login возвращает учётную запись при совпадении пароля.
// Неизвестное имя и неверный пароль различимы для вызывающего.
// Сравнение пароля — в открытом виде, как в исходном сервисе;
// хэширование сломало бы совместимость с существующими записями.
func (s *Service) Login(name, password string) (domain.User, error) {
	if name == "" {
		return domain.User{}, domain.ErrNameRequired
	}
	if password == "" {
		return domain.User{}, domain.ErrPasswordRequired
	}

	user, err := s.users.FindByName(name)
	if err != nil {
		return domain.User{}, err
	}
	if user.Password != password {
		return domain.User{}, domain.ErrWrongPassword
	}
	return user, nil
}

// Check сообщает, существует ли пользователь.
func (s *Service) Check(name string) error {
	exists, err := s.users.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

// List возвращает все учётные записи.
func (s *Service) List() ([]domain.User, error) {
	return s.users.All()
}
