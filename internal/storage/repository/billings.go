package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clube49/loyalty-club/internal/models"
)

// CreateBilling сохраняет ожидающий платёж и возвращает его ID.
func (s *Storage) CreateBilling(ctx context.Context, b models.Billing) (int, error) {
	const op = "storage.CreateBilling"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO billings (billing_id, user_uid, kind, coupon_id, amount, pix_code, status)
			  VALUES ($1, $2, $3, $4, $5, $6, 'pending')
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		b.BillingID, b.UserUID, b.Kind, b.CouponID, b.Amount, b.PixCode).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// MarkBillingPaid переводит платёж из pending в paid и возвращает его.
// Условие status = 'pending' делает повторные доставки webhook
// идемпотентными: второй вызов получает ErrBillingNotFound и ничего
// не начисляет.
func (s *Storage) MarkBillingPaid(ctx context.Context, billingID string) (*models.Billing, error) {
	const op = "storage.MarkBillingPaid"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE billings
			  SET status = 'paid'
			  WHERE billing_id = $1 AND status = 'pending'
			  RETURNING id, billing_id, user_uid, kind, coupon_id, amount, pix_code, status, created_at`
	b := &models.Billing{}
	var couponID sql.NullString
	var pixCode sql.NullString
	row := s.DB.QueryRowContext(ctx, query, billingID)
	if err := row.Scan(&b.ID, &b.BillingID, &b.UserUID, &b.Kind, &couponID,
		&b.Amount, &pixCode, &b.Status, &b.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, ErrBillingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if couponID.Valid {
		b.CouponID = &couponID.String
	}
	b.PixCode = pixCode.String
	return b, nil
}

// ReopenBilling возвращает платёж в pending. Используется как компенсация,
// когда начисление после отметки paid не удалось: следующая доставка
// webhook обработает платёж заново.
func (s *Storage) ReopenBilling(ctx context.Context, billingID string) error {
	const op = "storage.ReopenBilling"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE billings SET status = 'pending' WHERE billing_id = $1`
	if _, err := s.DB.ExecContext(ctx, query, billingID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
