package profile

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clube49/loyalty-club/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *RepoMock) ListUserCoupons(ctx context.Context, userUID string) ([]*models.UserCoupon, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserCoupon), args.Error(1)
}
func (m *RepoMock) ListTransactions(ctx context.Context, userUID string) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestGet_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)

	expected := &models.Profile{UserUID: "uid-1", Email: "member@example.com", Credits: 5.00}
	cacheMock.On("Get", "profile:uid-1", mock.Anything).Return(false, nil).Once()
	repo.On("GetProfile", mock.Anything, "uid-1").Return(expected, nil).Once()
	cacheMock.On("Set", "profile:uid-1", expected, time.Hour).Return(nil).Once()

	svc := New(repo, cacheMock, newNoopLogger())
	got, err := svc.Get(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	repo.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestListCoupons(t *testing.T) {
	repo := new(RepoMock)

	coupons := []*models.UserCoupon{{ID: "g-1", Code: "ABCD2345", Status: models.UserCouponStatusActive}}
	repo.On("ListUserCoupons", mock.Anything, "uid-1").Return(coupons, nil).Once()

	svc := New(repo, new(CacheMock), newNoopLogger())
	got, err := svc.ListCoupons(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListTransactions(t *testing.T) {
	repo := new(RepoMock)

	entries := []*models.LedgerEntry{
		{Amount: -2.00, Kind: models.LedgerKindCreditUsage},
		{Amount: 49.90, Kind: models.LedgerKindMembershipFee},
	}
	repo.On("ListTransactions", mock.Anything, "uid-1").Return(entries, nil).Once()

	svc := New(repo, new(CacheMock), newNoopLogger())
	got, err := svc.ListTransactions(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
