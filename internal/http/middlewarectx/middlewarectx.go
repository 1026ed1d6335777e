// Package middlewarectx содержит HTTP middleware аутентификации и защиты API.
//
// Запрос может быть аутентифицирован одной из двух схем:
//   - администратор — статический API-ключ в заголовке X-API-Key;
//   - участник — JWT в заголовке Authorization: Bearer.
//
// Схема разрешается один раз на запрос, результат кладётся в контекст
// и читается обработчиками через IsAdmin и MemberUID.
package middlewarectx

import (
	"context"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// MemberUIDKey — ключ для uuid участника в контексте
	MemberUIDKey Key = "member_uid"
	// EmailKey — ключ для почты участника в контексте
	EmailKey Key = "email"
	// AdminKey — ключ признака администратора в контексте
	AdminKey Key = "is_admin"
)

// IsAdmin сообщает, аутентифицирован ли запрос административным ключом.
func IsAdmin(ctx context.Context) bool {
	admin, ok := ctx.Value(AdminKey).(bool)
	return ok && admin
}

// MemberUID возвращает uuid участника из контекста запроса.
// Пустая строка означает, что участник не аутентифицирован.
func MemberUID(ctx context.Context) string {
	uid, _ := ctx.Value(MemberUIDKey).(string)
	return uid
}

// Email возвращает почту участника из контекста запроса.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
