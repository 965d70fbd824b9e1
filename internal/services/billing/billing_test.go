package billing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clube49/loyalty-club/internal/models"
	"github.com/clube49/loyalty-club/internal/paymentprovider"
	"github.com/clube49/loyalty-club/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateBilling(ctx context.Context, b models.Billing) (int, error) {
	args := m.Called(ctx, b)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) MarkBillingPaid(ctx context.Context, billingID string) (*models.Billing, error) {
	args := m.Called(ctx, billingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Billing), args.Error(1)
}

func (m *RepoMock) ReopenBilling(ctx context.Context, billingID string) error {
	return m.Called(ctx, billingID).Error(0)
}

func (m *RepoMock) GetCoupon(ctx context.Context, couponID string) (*models.Coupon, error) {
	args := m.Called(ctx, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *RepoMock) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type LedgerMock struct{ mock.Mock }

func (m *LedgerMock) ActivateMembership(ctx context.Context, userUID string, amount float64, description string) (*models.OperationResult, error) {
	args := m.Called(ctx, userUID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OperationResult), args.Error(1)
}

func (m *LedgerMock) RedeemPremium(ctx context.Context, userUID, couponID string) (*models.OperationResult, error) {
	args := m.Called(ctx, userUID, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OperationResult), args.Error(1)
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) CreateBilling(ctx context.Context, amount float64, customerEmail, description string) (*paymentprovider.BillingResponse, error) {
	args := m.Called(ctx, amount, customerEmail, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.BillingResponse), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func premiumCoupon() *models.Coupon {
	return &models.Coupon{
		ID:           "c0ffee00-0000-0000-0000-000000000003",
		Title:        "Jantar Completo",
		Type:         models.CouponTypePremium,
		CostMonetary: 120.00,
	}
}

func TestCreate_Membership(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	provider := new(ProviderMock)

	repo.On("GetProfile", mock.Anything, "user-1").
		Return(&models.Profile{UserUID: "user-1", Email: "ana@example.com"}, nil)
	provider.On("CreateBilling", mock.Anything, 49.90, "ana@example.com", "Clube49 annual membership").
		Return(&paymentprovider.BillingResponse{BillingID: "bill_1", URL: "https://pay", PixCode: "pix"}, nil)
	repo.On("CreateBilling", mock.Anything, mock.MatchedBy(func(b models.Billing) bool {
		return b.BillingID == "bill_1" &&
			b.UserUID == "user-1" &&
			b.Kind == models.BillingKindMembership &&
			b.CouponID == nil &&
			b.Amount == 49.90
	})).Return(1, nil)

	svc := New(provider, repo, ledger, 49.90, newNoopLogger())
	resp, err := svc.Create(context.Background(), "user-1", models.DummyBilling{Kind: models.BillingKindMembership})

	require.NoError(t, err)
	assert.Equal(t, "bill_1", resp.BillingID)
	repo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestCreate_PremiumCoupon(t *testing.T) {
	repo := new(RepoMock)
	provider := new(ProviderMock)
	coupon := premiumCoupon()

	repo.On("GetProfile", mock.Anything, "user-1").
		Return(&models.Profile{UserUID: "user-1", Email: "ana@example.com"}, nil)
	repo.On("GetCoupon", mock.Anything, coupon.ID).Return(coupon, nil)
	provider.On("CreateBilling", mock.Anything, 120.00, "ana@example.com", "Premium coupon: Jantar Completo").
		Return(&paymentprovider.BillingResponse{BillingID: "bill_2", PixCode: "pix"}, nil)
	repo.On("CreateBilling", mock.Anything, mock.MatchedBy(func(b models.Billing) bool {
		return b.Kind == models.BillingKindPremiumCoupon &&
			b.CouponID != nil && *b.CouponID == coupon.ID &&
			b.Amount == 120.00
	})).Return(2, nil)

	svc := New(provider, repo, new(LedgerMock), 49.90, newNoopLogger())
	resp, err := svc.Create(context.Background(), "user-1",
		models.DummyBilling{Kind: models.BillingKindPremiumCoupon, CouponID: coupon.ID})

	require.NoError(t, err)
	assert.Equal(t, "bill_2", resp.BillingID)
	repo.AssertExpectations(t)
}

func TestCreate_PremiumBillingForStandardCoupon(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetProfile", mock.Anything, "user-1").
		Return(&models.Profile{UserUID: "user-1", Email: "ana@example.com"}, nil)
	repo.On("GetCoupon", mock.Anything, "std-id").
		Return(&models.Coupon{ID: "std-id", Type: models.CouponTypeStandard}, nil)

	svc := New(new(ProviderMock), repo, new(LedgerMock), 49.90, newNoopLogger())
	_, err := svc.Create(context.Background(), "user-1",
		models.DummyBilling{Kind: models.BillingKindPremiumCoupon, CouponID: "std-id"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not premium")
}

func TestCreate_ProviderDown(t *testing.T) {
	repo := new(RepoMock)
	provider := new(ProviderMock)
	repo.On("GetProfile", mock.Anything, "user-1").
		Return(&models.Profile{UserUID: "user-1", Email: "ana@example.com"}, nil)
	provider.On("CreateBilling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := New(provider, repo, new(LedgerMock), 49.90, newNoopLogger())
	_, err := svc.Create(context.Background(), "user-1", models.DummyBilling{Kind: models.BillingKindMembership})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment provider")
	repo.AssertNotCalled(t, "CreateBilling", mock.Anything, mock.Anything)
}

func TestProcessPaid_Membership(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)

	repo.On("MarkBillingPaid", mock.Anything, "bill_1").Return(&models.Billing{
		BillingID: "bill_1",
		UserUID:   "user-1",
		Kind:      models.BillingKindMembership,
		Amount:    49.90,
		Status:    models.BillingStatusPaid,
	}, nil)
	ledger.On("ActivateMembership", mock.Anything, "user-1", 49.90, "Membership fee paid via PIX").
		Return(&models.OperationResult{Success: true}, nil)

	svc := New(new(ProviderMock), repo, ledger, 49.90, newNoopLogger())
	err := svc.ProcessPaid(context.Background(), "bill_1")

	require.NoError(t, err)
	ledger.AssertExpectations(t)
	repo.AssertNotCalled(t, "ReopenBilling", mock.Anything, mock.Anything)
}

func TestProcessPaid_PremiumCoupon(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	couponID := "c0ffee00-0000-0000-0000-000000000003"

	repo.On("MarkBillingPaid", mock.Anything, "bill_2").Return(&models.Billing{
		BillingID: "bill_2",
		UserUID:   "user-1",
		Kind:      models.BillingKindPremiumCoupon,
		CouponID:  &couponID,
		Amount:    120.00,
	}, nil)
	ledger.On("RedeemPremium", mock.Anything, "user-1", couponID).
		Return(&models.OperationResult{Success: true, Code: "ABC23456"}, nil)

	svc := New(new(ProviderMock), repo, ledger, 49.90, newNoopLogger())
	require.NoError(t, svc.ProcessPaid(context.Background(), "bill_2"))
	ledger.AssertExpectations(t)
}

func TestProcessPaid_DuplicateDelivery(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	repo.On("MarkBillingPaid", mock.Anything, "bill_1").
		Return(nil, fmt.Errorf("storage.MarkBillingPaid: %w", repository.ErrBillingNotFound))

	svc := New(new(ProviderMock), repo, ledger, 49.90, newNoopLogger())
	require.NoError(t, svc.ProcessPaid(context.Background(), "bill_1"))
	ledger.AssertNotCalled(t, "ActivateMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPaid_SettlementFailureReopensBilling(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)

	repo.On("MarkBillingPaid", mock.Anything, "bill_1").Return(&models.Billing{
		BillingID: "bill_1",
		UserUID:   "user-1",
		Kind:      models.BillingKindMembership,
		Amount:    49.90,
	}, nil)
	ledger.On("ActivateMembership", mock.Anything, "user-1", 49.90, mock.Anything).
		Return(nil, errors.New("db down"))
	repo.On("ReopenBilling", mock.Anything, "bill_1").Return(nil)

	svc := New(new(ProviderMock), repo, ledger, 49.90, newNoopLogger())
	err := svc.ProcessPaid(context.Background(), "bill_1")

	require.Error(t, err)
	repo.AssertCalled(t, "ReopenBilling", mock.Anything, "bill_1")
}
