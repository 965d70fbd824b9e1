package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clube49/loyalty-club/internal/models"
)

// GetProfile возвращает профиль участника по uid учётной записи.
func (s *Storage) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, email, is_member, credits, member_code,
			      membership_expires_at, created_at
			  FROM profiles
			  WHERE user_uid = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var memberCode sql.NullString
	var expiresAt sql.NullTime
	if err := row.Scan(&p.UserUID, &p.Email, &p.IsMember, &p.Credits,
		&memberCode, &expiresAt, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if memberCode.Valid {
		p.MemberCode = &memberCode.String
	}
	if expiresAt.Valid {
		p.MembershipExpiresAt = &expiresAt.Time
	}
	return p, nil
}

// ListUserCoupons возвращает выданные участнику купоны вместе с данными
// каталога, новые первыми.
func (s *Storage) ListUserCoupons(ctx context.Context, userUID string) ([]*models.UserCoupon, error) {
	const op = "storage.ListUserCoupons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uc.id, uc.user_uid, uc.coupon_id, uc.code, uc.status, uc.created_at,
			      c.id, c.title, c.description, c.type, c.cost_credits, c.cost_monetary,
			      c.value_real, c.image_url, c.created_at
			  FROM user_coupons uc
			  JOIN coupons c ON c.id = uc.coupon_id
			  WHERE uc.user_uid = $1
			  ORDER BY uc.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserCoupon
	for rows.Next() {
		var uc models.UserCoupon
		var c models.Coupon
		if err := rows.Scan(&uc.ID, &uc.UserUID, &uc.CouponID, &uc.Code, &uc.Status, &uc.CreatedAt,
			&c.ID, &c.Title, &c.Description, &c.Type, &c.CostCredits, &c.CostMonetary,
			&c.ValueReal, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		uc.Coupon = &c
		result = append(result, &uc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTransactions возвращает журнал операций участника, новые первыми.
func (s *Storage) ListTransactions(ctx context.Context, userUID string) ([]*models.LedgerEntry, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, kind, description, created_at
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.LedgerEntry
	for rows.Next() {
		var item models.LedgerEntry
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &item.Kind,
			&description, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Description = description.String
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
