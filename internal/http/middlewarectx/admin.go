package middlewarectx

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
)

// adminKeyMatches сравнивает ключ из запроса с настроенным за константное время.
// Ключ берётся из заголовка X-API-Key; query-параметр api_key принимается
// как устаревший запасной вариант и нигде не логируется.
func adminKeyMatches(r *http.Request, adminKey string) bool {
	if adminKey == "" {
		return false
	}
	got := r.Header.Get("X-API-Key")
	if got == "" {
		got = r.URL.Query().Get("api_key")
	}
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) == 1
}

// AdminKeyMiddleware возвращает HTTP middleware, пропускающий только запросы
// с корректным административным API-ключом.
func AdminKeyMiddleware(adminKey string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminKeyMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !adminKeyMatches(r, adminKey) {
				log.Error("missing or invalid api key")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid api key"))
				return
			}
			ctx := context.WithValue(r.Context(), AdminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOrJWTMiddleware пропускает запросы либо с административным ключом,
// либо с валидным JWT участника. Используется для ресурсов, доступных
// администратору или владельцу.
func AdminOrJWTMiddleware(adminKey string, maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	jwtOnly := JWTMiddleware(maker, log)
	return func(next http.Handler) http.Handler {
		withJWT := jwtOnly(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKeyMatches(r, adminKey) {
				ctx := context.WithValue(r.Context(), AdminKey, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			withJWT.ServeHTTP(w, r)
		})
	}
}
