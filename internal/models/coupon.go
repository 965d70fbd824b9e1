package models

import "time"

// Типы купонов каталога.
const (
	CouponTypeStandard = "standard" // Оплачивается кредитами
	CouponTypePremium  = "premium"  // Оплачивается деньгами через PIX
)

// Статусы выданного купона.
const (
	UserCouponStatusActive = "active"
	UserCouponStatusUsed   = "used"
)

// Coupon представляет запись каталога купонов. Каталог неизменяем
// для операций журнала: сервис только читает его.
type Coupon struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`          // standard или premium
	CostCredits  float64   `json:"cost_credits"`  // Цена в кредитах (standard)
	CostMonetary float64   `json:"cost_monetary"` // Цена в деньгах (premium)
	ValueReal    float64   `json:"value_real"`    // Номинальная выгода купона
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCoupon представляет купон, выданный участнику при погашении.
// Запись создаётся ровно один раз на успешное погашение.
type UserCoupon struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	CouponID  string    `json:"coupon_id"`
	Code      string    `json:"code"` // Уникальный код для предъявления
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Coupon    *Coupon   `json:"coupon,omitempty"` // Данные каталога при выборке с join
}

// DummyRedeem используется для приёма запроса на погашение купона.
type DummyRedeem struct {
	CouponID string `json:"coupon_id" validate:"required,uuid"` // Идентификатор купона каталога
}
