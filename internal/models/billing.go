package models

import "time"

// Назначения платежа.
const (
	BillingKindMembership    = "membership"     // Годовая оплата членства
	BillingKindPremiumCoupon = "premium_coupon" // Покупка premium-купона
)

// Статусы платежа.
const (
	BillingStatusPending = "pending"
	BillingStatusPaid    = "paid"
)

// Billing представляет ожидающий или завершённый PIX-платёж.
// Начисление по платежу выполняется только после подтверждения
// провайдером через webhook, никогда со слов клиента.
type Billing struct {
	ID        int       `json:"id"`
	BillingID string    `json:"billing_id"` // Идентификатор у платёжного провайдера
	UserUID   string    `json:"user_uid"`
	Kind      string    `json:"kind"`
	CouponID  *string   `json:"coupon_id,omitempty"` // Только для premium_coupon
	Amount    float64   `json:"amount"`
	PixCode   string    `json:"pix_code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyBilling используется для приёма запроса на создание платежа.
type DummyBilling struct {
	Kind     string `json:"kind" validate:"required,oneof=membership premium_coupon"`
	CouponID string `json:"coupon_id" validate:"omitempty,uuid"` // Обязателен для premium_coupon
}
