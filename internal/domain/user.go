package domain

// User описывает учётную запись покупателя.
// Пароль хранится и сравнивается в открытом виде — так делает
// исходный сервис, и это поведение сохранено для совместимости.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// ValidateForRegister проверяет обязательные поля регистрации.
func (u User) ValidateForRegister() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Password == "" {
		return ErrPasswordRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	return nil
}
