// Package sl содержит вспомогательные функции для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err возвращает атрибут с ключом "error" и текстом ошибки,
// чтобы ошибки во всех логах выглядели единообразно.
//
// Пример:
//
//	log.Error("failed to redeem coupon", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
