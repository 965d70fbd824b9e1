package models

import "time"

// MembershipNotification — сообщение для очереди уведомлений об
// активации членства. Отправитель шлёт код участника на почту.
type MembershipNotification struct {
	Email      string    `json:"email"`
	MemberCode string    `json:"member_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}
