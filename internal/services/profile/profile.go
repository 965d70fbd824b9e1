// Package profile содержит бизнес-логику чтения данных участника:
// профиль с кешем, выданные купоны и журнал операций.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
)

// ProfileRepository определяет методы для чтения данных участника.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
	ListUserCoupons(ctx context.Context, userUID string) ([]*models.UserCoupon, error)
	ListTransactions(ctx context.Context, userUID string) ([]*models.LedgerEntry, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует чтение данных участника.
type Service struct {
	repo  ProfileRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ProfileRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get возвращает профиль участника, используя кеш или репозиторий.
// Кеш инвалидируют операции журнала при каждом изменении баланса.
func (s *Service) Get(ctx context.Context, userUID string) (*models.Profile, error) {
	var result *models.Profile
	cacheKey := fmt.Sprintf("profile:%s", userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read profile cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetProfile(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListCoupons возвращает купоны участника, новые первыми.
func (s *Service) ListCoupons(ctx context.Context, userUID string) ([]*models.UserCoupon, error) {
	return s.repo.ListUserCoupons(ctx, userUID)
}

// ListTransactions возвращает журнал операций участника, новые первыми.
func (s *Service) ListTransactions(ctx context.Context, userUID string) ([]*models.LedgerEntry, error) {
	return s.repo.ListTransactions(ctx, userUID)
}
