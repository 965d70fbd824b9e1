package models

import "time"

// Виды записей журнала операций.
const (
	LedgerKindMembershipFee   = "membership_fee"   // Оплата членства, amount > 0
	LedgerKindCreditUsage     = "credit_usage"     // Списание кредитов, amount < 0
	LedgerKindPremiumPurchase = "premium_purchase" // Покупка premium-купона за деньги
)

// LedgerEntry представляет неизменяемую запись журнала операций с балансом.
// Отрицательный amount — списание, положительный — начисление.
// Журнал append-only и служит аудиторским следом каждого изменения баланса.
type LedgerEntry struct {
	ID          string    `json:"id"`
	UserUID     string    `json:"user_uid"`
	Amount      float64   `json:"amount"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// OperationResult — результат бизнес-операции журнала.
// Бизнес-отказы (нет профиля, недостаточно кредитов) возвращаются
// как данные, а не как ошибки: ошибкой считается только сбой инфраструктуры.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"` // Код купона или участника при успехе
}
