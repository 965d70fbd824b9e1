package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clube49/loyalty-club/internal/models"
)

// ListCoupons возвращает каталог купонов по возрастанию номинала.
func (s *Storage) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	const op = "storage.ListCoupons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, type, cost_credits, cost_monetary,
			      value_real, image_url, created_at
			  FROM coupons
			  ORDER BY value_real ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Coupon
	for rows.Next() {
		var item models.Coupon
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Type,
			&item.CostCredits, &item.CostMonetary, &item.ValueReal,
			&item.ImageURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCoupon возвращает купон каталога по ID.
func (s *Storage) GetCoupon(ctx context.Context, couponID string) (*models.Coupon, error) {
	const op = "storage.GetCoupon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, type, cost_credits, cost_monetary,
			      value_real, image_url, created_at
			  FROM coupons
			  WHERE id = $1`
	var item models.Coupon
	row := s.DB.QueryRowContext(ctx, query, couponID)
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Type,
		&item.CostCredits, &item.CostMonetary, &item.ValueReal,
		&item.ImageURL, &item.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, ErrCouponNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
