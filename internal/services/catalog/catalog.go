// Package catalog содержит бизнес-логику чтения каталога купонов
// с кешированием. Каталог для сервиса read-only, поэтому чтение
// идемпотентно и безопасно кешируется.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
)

const cacheKey = "coupons:catalog"

// CouponRepository определяет методы для чтения каталога.
type CouponRepository interface {
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует чтение каталога с кешем.
type Service struct {
	repo  CouponRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo CouponRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает каталог купонов, используя кеш или репозиторий.
func (s *Service) List(ctx context.Context) ([]*models.Coupon, error) {
	var result []*models.Coupon
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read catalog cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListCoupons(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache catalog", sl.Err(err))
	}
	return result, nil
}
