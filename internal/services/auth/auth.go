// Package auth содержит логику регистрации, авторизации и валидации JWT.
package auth

import (
	"context"
	"errors"

	"github.com/clube49/loyalty-club/internal/lib/jwt"
	"github.com/clube49/loyalty-club/internal/lib/password"
	"github.com/clube49/loyalty-club/internal/models"
)

// UserRepository описывает контракт для работы с учётными записями.
type UserRepository interface {
	// RegisterUser сохраняет учётную запись вместе с пустым профилем
	// участника и возвращает uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает учётную запись по email или ошибку.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает учётную запись с хэшированием пароля и ролью "user".
// Профиль участника с нулевым балансом создаётся той же операцией.
func (s *Service) Register(ctx context.Context, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         "user",
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, role, userUID string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", "", errors.New("invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", "", err
	}
	return token, user.Role, user.UID, nil
}

// ValidateToken проверяет JWT и возвращает claims, если токен валиден.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
