package domain

import "errors"

var (
	// Ошибка отсутствующего имени пользователя.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отсутствующего пароля.
	ErrPasswordRequired = errors.New("password is required")
	// Ошибка отсутствующего email.
	ErrEmailRequired = errors.New("email is required")
	// ErrUserNotFound возвращается, если пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrNameExists возвращается при попытке зарегистрировать занятое имя.
	ErrNameExists = errors.New("name already exists")
	// ErrWrongPassword — пароль не совпал; отличим от ErrUserNotFound намеренно.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrHistoryNotFound возвращается, если у пользователя ещё нет истории заказов.
	ErrHistoryNotFound = errors.New("order history not found")
)

// IsMissingField проверяет, является ли ошибка ошибкой валидации обязательных полей.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrEmailRequired)
}
