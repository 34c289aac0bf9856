package domain

import "encoding/json"

// UserRepository описывает требования к хранилищу пользователей.
type UserRepository interface {
	// Exists сообщает, занято ли имя.
	Exists(name string) (bool, error)
	// Create сохраняет нового пользователя. Возвращает ErrNameExists,
	// если имя уже занято; уникальность гарантирует само хранилище.
	Create(user User) error
	// FindByName возвращает пользователя или ErrUserNotFound.
	FindByName(name string) (User, error)
	// All возвращает всех пользователей.
	All() ([]User, error)
}

// OrderHistoryRepository описывает хранилище документов истории заказов.
type OrderHistoryRepository interface {
	// Append атомарно дописывает заказ в историю пользователя,
	// создавая документ при его отсутствии. Одна операция хранилища:
	// без чтения-модификации-записи на этом уровне.
	Append(name string, order json.RawMessage) error
	// Find возвращает документ истории или ErrHistoryNotFound.
	Find(name string) (OrderHistory, error)
}

// Counter выдаёт монотонно растущие идентификаторы анонимных посетителей.
type Counter interface {
	// Next атомарно инкрементирует счётчик и возвращает новое значение.
	Next() (int64, error)
}

// OrderEventPublisher публикует событие о дописанном заказе.
type OrderEventPublisher interface {
	// OrderAppended вызывается после успешного дописывания; ошибка
	// публикации не должна откатывать сам заказ.
	OrderAppended(name string, order json.RawMessage) error
}

// UserEventPublisher публикует событие о новой учётной записи.
type UserEventPublisher interface {
	// UserRegistered вызывается после успешной регистрации; ошибка
	// публикации не должна откатывать саму регистрацию.
	UserRegistered(name string) error
}
