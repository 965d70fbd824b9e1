// Package models содержит доменные структуры клуба лояльности:
// профиль участника, купоны каталога, выданные купоны и записи
// журнала операций с балансом, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Profile представляет профиль участника клуба, привязанный к учётной записи.
// Баланс кредитов никогда не опускается ниже нуля — это инвариант,
// который обеспечивают операции журнала.
type Profile struct {
	UserUID             string     `json:"user_uid"`              // Идентификатор учётной записи
	Email               string     `json:"email"`                 // Электронная почта
	IsMember            bool       `json:"is_member"`             // Признак активного членства
	Credits             float64    `json:"credits"`               // Баланс кредитов
	MemberCode          *string    `json:"member_code"`           // Код участника, выдаётся при активации
	MembershipExpiresAt *time.Time `json:"membership_expires_at"` // Дата окончания членства
	CreatedAt           time.Time  `json:"created_at"`
}
