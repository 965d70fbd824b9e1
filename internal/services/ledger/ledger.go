// Package ledger содержит бизнес-логику операций с балансом участника:
// погашение купонов и активацию членства. Бизнес-отказы (нет профиля,
// недостаточно кредитов) возвращаются как результат {success, message},
// ошибкой считается только сбой хранилища.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
	"github.com/clube49/loyalty-club/internal/storage/repository"
)

// LedgerRepository определяет методы хранилища, нужные операциям журнала.
type LedgerRepository interface {
	// RedeemCoupon атомарно списывает кредиты, выдаёт купон и пишет журнал.
	RedeemCoupon(ctx context.Context, userUID, couponID string, cost float64, kind, description string) (string, error)
	// ActivateMembership атомарно активирует членство и пишет журнал.
	ActivateMembership(ctx context.Context, userUID string, amount float64, description string) (string, time.Time, error)
	// GetCoupon возвращает купон каталога.
	GetCoupon(ctx context.Context, couponID string) (*models.Coupon, error)
	// GetProfile возвращает профиль участника.
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher публикует событие активации членства в очередь уведомлений.
type Publisher interface {
	PublishMembershipActivated(msg models.MembershipNotification) error
}

// Service реализует операции журнала поверх репозитория.
type Service struct {
	repo      LedgerRepository
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. publisher может быть nil,
// тогда уведомления не отправляются.
func New(repo LedgerRepository, cache Cache, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// RedeemStandard погашает standard-купон за кредиты каталожной цены.
func (s *Service) RedeemStandard(ctx context.Context, userUID, couponID string) (*models.OperationResult, error) {
	coupon, err := s.repo.GetCoupon(ctx, couponID)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return &models.OperationResult{Success: false, Message: "coupon not found"}, nil
		}
		return nil, err
	}
	if coupon.Type != models.CouponTypeStandard {
		return &models.OperationResult{Success: false, Message: "coupon requires monetary payment"}, nil
	}

	description := fmt.Sprintf("Coupon redemption: %s", coupon.Title)
	return s.redeem(ctx, userUID, couponID, coupon.CostCredits, models.LedgerKindCreditUsage, description)
}

// RedeemPremium выдаёт premium-купон после подтверждённой PIX-оплаты.
// Кредиты не списываются (cost = 0), запись журнала получает вид
// premium_purchase. Вызывается только из обработки webhook.
func (s *Service) RedeemPremium(ctx context.Context, userUID, couponID string) (*models.OperationResult, error) {
	coupon, err := s.repo.GetCoupon(ctx, couponID)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return &models.OperationResult{Success: false, Message: "coupon not found"}, nil
		}
		return nil, err
	}

	description := fmt.Sprintf("Premium coupon purchase: %s", coupon.Title)
	return s.redeem(ctx, userUID, couponID, 0, models.LedgerKindPremiumPurchase, description)
}

func (s *Service) redeem(ctx context.Context, userUID, couponID string, cost float64, kind, description string) (*models.OperationResult, error) {
	code, err := s.repo.RedeemCoupon(ctx, userUID, couponID, cost, kind, description)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			return &models.OperationResult{Success: false, Message: "profile not found"}, nil
		case errors.Is(err, repository.ErrInsufficientBalance):
			return &models.OperationResult{Success: false, Message: "insufficient balance"}, nil
		default:
			return nil, err
		}
	}

	s.invalidateProfile(userUID)
	s.log.Info("coupon redeemed",
		slog.String("user_uid", userUID),
		slog.String("coupon_id", couponID),
		slog.Float64("cost", cost))

	return &models.OperationResult{
		Success: true,
		Message: "coupon redeemed",
		Code:    code,
	}, nil
}

// ActivateMembership активирует или продлевает членство: начисляет amount
// кредитов, выдаёт новый код участника, сбрасывает срок на год вперёд.
// Любой сбой хранилища оборачивается как отказ активации, состояние
// при этом не меняется.
func (s *Service) ActivateMembership(ctx context.Context, userUID string, amount float64, description string) (*models.OperationResult, error) {
	memberCode, expiresAt, err := s.repo.ActivateMembership(ctx, userUID, amount, description)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return &models.OperationResult{Success: false, Message: "profile not found"}, nil
		}
		return nil, fmt.Errorf("activation failed: %w", err)
	}

	s.invalidateProfile(userUID)
	s.log.Info("membership activated",
		slog.String("user_uid", userUID),
		slog.Float64("amount", amount))

	s.notifyMembershipActivated(ctx, userUID, memberCode, expiresAt)

	return &models.OperationResult{
		Success: true,
		Message: "membership activated",
		Code:    memberCode,
	}, nil
}

func (s *Service) invalidateProfile(userUID string) {
	cacheKey := fmt.Sprintf("profile:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

// notifyMembershipActivated публикует уведомление о новом коде участника.
// Отправка best-effort: отказ очереди не откатывает активацию.
func (s *Service) notifyMembershipActivated(ctx context.Context, userUID, memberCode string, expiresAt time.Time) {
	if s.publisher == nil {
		return
	}
	profile, err := s.repo.GetProfile(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load profile for notification", sl.Err(err))
		return
	}
	msg := models.MembershipNotification{
		Email:      profile.Email,
		MemberCode: memberCode,
		ExpiresAt:  expiresAt,
	}
	if err := s.publisher.PublishMembershipActivated(msg); err != nil {
		s.log.Warn("failed to publish membership notification", sl.Err(err))
	}
}
