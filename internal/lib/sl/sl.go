// Package sl содержит мелкие помощники для логгера slog,
// общие для всех обработчиков и сервисов приложения.
package sl

import "log/slog"

// Err упаковывает ошибку в slog.Attr с ключом "error", чтобы записи
// об ошибках во всех пакетах выглядели одинаково.
//
// Пример:
//
//	log.Error("failed to create member", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
