package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clube49/loyalty-club/internal/lib/redemption"
)

// codeInsertAttempts — сколько раз повторить вставку при коллизии
// сгенерированного кода с uniq-индексом.
const codeInsertAttempts = 3

// RedeemCoupon списывает cost кредитов с профиля, выдаёт купон с новым
// кодом и добавляет запись журнала, всё одной транзакцией.
// Строка профиля блокируется через SELECT ... FOR UPDATE, поэтому
// конкурентные погашения одного участника сериализуются и двойное
// списание невозможно.
//
// Возвращает ErrProfileNotFound или ErrInsufficientBalance без каких-либо
// изменений состояния. cost равен нулю для premium-купонов, оплаченных
// деньгами: выдача купона и запись журнала выполняются так же атомарно.
func (s *Storage) RedeemCoupon(ctx context.Context, userUID, couponID string, cost float64, kind, description string) (string, error) {
	const op = "storage.RedeemCoupon"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var credits float64
	query := `SELECT credits FROM profiles WHERE user_uid = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, userUID).Scan(&credits); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if credits < cost {
		return "", fmt.Errorf("%s: %w", op, ErrInsufficientBalance)
	}

	query = `UPDATE profiles SET credits = credits - $1 WHERE user_uid = $2`
	if _, err := tx.ExecContext(ctx, query, cost, userUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.insertUserCoupon(ctx, tx, userUID, couponID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO transactions (user_uid, amount, kind, description)
			 VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, userUID, -cost, kind, description); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return code, nil
}

// insertUserCoupon вставляет выданный купон, повторяя генерацию кода
// при нарушении уникальности.
func (s *Storage) insertUserCoupon(ctx context.Context, tx *sql.Tx, userUID, couponID string) (string, error) {
	query := `INSERT INTO user_coupons (user_uid, coupon_id, code, status)
			  VALUES ($1, $2, $3, 'active')`
	var lastErr error
	for range codeInsertAttempts {
		code, err := redemption.NewCode()
		if err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx, query, userUID, couponID, code); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				lastErr = err
				continue
			}
			return "", err
		}
		return code, nil
	}
	return "", fmt.Errorf("code collision retries exhausted: %w", lastErr)
}

// ActivateMembership помечает профиль как участника, начисляет amount
// кредитов, выдаёт новый код участника и сбрасывает срок членства на
// год от момента активации (повторная активация не суммирует сроки).
// Запись журнала membership_fee добавляется той же транзакцией:
// при любом сбое ни одно поле не меняется.
func (s *Storage) ActivateMembership(ctx context.Context, userUID string, amount float64, description string) (string, time.Time, error) {
	const op = "storage.ActivateMembership"
	select {
	case <-ctx.Done():
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	memberCode, err := redemption.NewCode()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	expiresAt := time.Now().UTC().AddDate(1, 0, 0)

	query := `UPDATE profiles
			  SET is_member = true,
			      credits = credits + $1,
			      member_code = $2,
			      membership_expires_at = $3
			  WHERE user_uid = $4`
	result, err := tx.ExecContext(ctx, query, amount, memberCode, expiresAt, userUID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
	}

	query = `INSERT INTO transactions (user_uid, amount, kind, description)
			 VALUES ($1, $2, 'membership_fee', $3)`
	if _, err := tx.ExecContext(ctx, query, userUID, amount, description); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return memberCode, expiresAt, nil
}
