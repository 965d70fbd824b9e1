package models

import "time"

// User представляет учётную запись для аутентификации.
// Профиль участника создаётся неявно вместе с учётной записью.
type User struct {
	UID          string // Уникальный идентификатор
	Email        string // Электронная почта (уникальная)
	PasswordHash string // bcrypt-хэш пароля
	Role         string // Роль, admin или user
	CreatedAt    time.Time
}
