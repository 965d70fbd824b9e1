// Package redemption генерирует короткие непрозрачные коды для выданных
// купонов и карт участников. Код — 8 символов в верхнем регистре из
// алфавита без неоднозначных знаков, источник случайности — crypto/rand.
// Уникальность гарантирует uniq-индекс в базе: при коллизии вызывающая
// сторона запрашивает новый код и повторяет вставку.
package redemption

import (
	"crypto/rand"
	"fmt"
)

// Без 0/O и 1/I, чтобы код можно было продиктовать.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength — длина генерируемого кода.
const CodeLength = 8

// NewCode возвращает новый случайный код погашения.
func NewCode() (string, error) {
	const op = "redemption.NewCode"
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
