// Package billing оркестрирует PIX-платежи: создание счёта у провайдера,
// учёт ожидающих платежей и начисление после подтверждения оплаты.
// Начисление выполняется только по webhook провайдера — клиент никогда
// сам не объявляет платёж успешным.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
	"github.com/clube49/loyalty-club/internal/paymentprovider"
	"github.com/clube49/loyalty-club/internal/storage/repository"
)

// BillingRepository определяет методы хранилища для платежей.
type BillingRepository interface {
	CreateBilling(ctx context.Context, b models.Billing) (int, error)
	MarkBillingPaid(ctx context.Context, billingID string) (*models.Billing, error)
	ReopenBilling(ctx context.Context, billingID string) error
	GetCoupon(ctx context.Context, couponID string) (*models.Coupon, error)
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Ledger — операции журнала, выполняемые после подтверждения оплаты.
type Ledger interface {
	ActivateMembership(ctx context.Context, userUID string, amount float64, description string) (*models.OperationResult, error)
	RedeemPremium(ctx context.Context, userUID, couponID string) (*models.OperationResult, error)
}

// Service реализует бизнес-логику платежей.
type Service struct {
	provider      paymentprovider.Provider
	repo          BillingRepository
	ledger        Ledger
	membershipFee float64
	log           *slog.Logger
}

// New создает новый экземпляр Service.
func New(provider paymentprovider.Provider, repo BillingRepository, ledger Ledger, membershipFee float64, log *slog.Logger) *Service {
	return &Service{
		provider:      provider,
		repo:          repo,
		ledger:        ledger,
		membershipFee: membershipFee,
		log:           log,
	}
}

// Create создаёт PIX-счёт на членство или premium-купон и сохраняет
// ожидающий платёж. Возвращает данные для оплаты (ссылка, pix-код).
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyBilling) (*paymentprovider.BillingResponse, error) {
	profile, err := s.repo.GetProfile(ctx, userUID)
	if err != nil {
		return nil, err
	}

	var amount float64
	var description string
	var couponID *string

	switch req.Kind {
	case models.BillingKindMembership:
		amount = s.membershipFee
		description = "Clube49 annual membership"
	case models.BillingKindPremiumCoupon:
		if req.CouponID == "" {
			return nil, errors.New("coupon_id is required for premium_coupon billing")
		}
		coupon, err := s.repo.GetCoupon(ctx, req.CouponID)
		if err != nil {
			return nil, err
		}
		if coupon.Type != models.CouponTypePremium {
			return nil, errors.New("coupon is not premium")
		}
		amount = coupon.CostMonetary
		description = fmt.Sprintf("Premium coupon: %s", coupon.Title)
		couponID = &coupon.ID
	default:
		return nil, fmt.Errorf("unknown billing kind: %s", req.Kind)
	}

	resp, err := s.provider.CreateBilling(ctx, amount, profile.Email, description)
	if err != nil {
		return nil, fmt.Errorf("payment provider: %w", err)
	}

	_, err = s.repo.CreateBilling(ctx, models.Billing{
		BillingID: resp.BillingID,
		UserUID:   userUID,
		Kind:      req.Kind,
		CouponID:  couponID,
		Amount:    amount,
		PixCode:   resp.PixCode,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("billing created",
		slog.String("billing_id", resp.BillingID),
		slog.String("kind", req.Kind),
		slog.Float64("amount", amount))
	return resp, nil
}

// ProcessPaid обрабатывает подтверждение оплаты от провайдера.
// Платёж сначала переводится в paid под guard-условием, поэтому
// повторная доставка webhook ничего не начисляет. Если начисление
// не удалось, платёж возвращается в pending и провайдер доставит
// событие ещё раз.
func (s *Service) ProcessPaid(ctx context.Context, billingID string) error {
	b, err := s.repo.MarkBillingPaid(ctx, billingID)
	if err != nil {
		if errors.Is(err, repository.ErrBillingNotFound) {
			s.log.Info("billing already settled or unknown", slog.String("billing_id", billingID))
			return nil
		}
		return err
	}

	var result *models.OperationResult
	switch b.Kind {
	case models.BillingKindMembership:
		result, err = s.ledger.ActivateMembership(ctx, b.UserUID, b.Amount, "Membership fee paid via PIX")
	case models.BillingKindPremiumCoupon:
		if b.CouponID == nil {
			err = errors.New("premium billing without coupon_id")
			break
		}
		result, err = s.ledger.RedeemPremium(ctx, b.UserUID, *b.CouponID)
	default:
		err = fmt.Errorf("unknown billing kind: %s", b.Kind)
	}

	if err == nil && result != nil && !result.Success {
		err = fmt.Errorf("ledger rejected settlement: %s", result.Message)
	}
	if err != nil {
		if reopenErr := s.repo.ReopenBilling(ctx, billingID); reopenErr != nil {
			s.log.Error("failed to reopen billing after settlement failure", sl.Err(reopenErr))
		}
		return fmt.Errorf("settle billing %s: %w", billingID, err)
	}

	s.log.Info("billing settled",
		slog.String("billing_id", billingID),
		slog.String("kind", b.Kind))
	return nil
}
