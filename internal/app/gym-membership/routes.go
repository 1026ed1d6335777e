// Package gymmembership предоставляет маршруты для основного приложения.
package gymmembership

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/callback"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	membercreate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/create"
	memberlist "github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/list"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/me"
	memberread "github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/read"
	memberremove "github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/remove"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/stats"
	memberupdate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/member/update"
	plancreate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/plan/create"
	planlist "github.com/magabrotheeeer/gym-membership/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/gym-membership/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/gym-membership/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/plan/update"
	transactioncreate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/transaction/create"
	transactionlist "github.com/magabrotheeeer/gym-membership/internal/http/handlers/transaction/list"
	transactionread "github.com/magabrotheeeer/gym-membership/internal/http/handlers/transaction/read"
	transactionupdate "github.com/magabrotheeeer/gym-membership/internal/http/handlers/transaction/update"
	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/gym-membership/internal/services/auth"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
	planservice "github.com/magabrotheeeer/gym-membership/internal/services/plan"
	transactionservice "github.com/magabrotheeeer/gym-membership/internal/services/transaction"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Services собирает сервисы, которые нужны маршрутам.
type Services struct {
	Members      *memberservice.Service
	Plans        *planservice.Service
	Transactions *transactionservice.Service
	Auth         *authservice.Service
	Storage      *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, maker jwt.Maker, adminKey string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.RateLimitMiddleware(logger, 50, 100))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/auth/callback", callback.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/callback", callback.New(logger, s.Auth).ServeHTTP)

		r.Get("/pricing_plans", planlist.New(logger, s.Plans).ServeHTTP)
		r.Get("/pricing_plans/{uuid}", planread.New(logger, s.Plans).ServeHTTP)

		r.Get("/health", health.New(logger, s.Storage).ServeHTTP)

		// Группа с JWT аутентификацией участника
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Get("/members/me", me.New(logger, s.Members).ServeHTTP)
		})

		// Группа, доступная администратору или владельцу
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AdminOrJWTMiddleware(adminKey, maker, logger))
			r.Get("/transactions/{uuid}", transactionread.New(logger, s.Transactions).ServeHTTP)
		})

		// Группа с административным ключом
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AdminKeyMiddleware(adminKey, logger))

			r.Post("/members", membercreate.New(logger, s.Members).ServeHTTP)
			r.Get("/members", memberlist.New(logger, s.Members).ServeHTTP)
			r.Get("/members/stats", stats.New(logger, s.Members).ServeHTTP)
			r.Get("/members/{uuid}", memberread.New(logger, s.Members).ServeHTTP)
			r.Put("/members/{uuid}", memberupdate.New(logger, s.Members).ServeHTTP)
			r.Delete("/members/{uuid}", memberremove.New(logger, s.Members).ServeHTTP)

			r.Post("/pricing_plans", plancreate.New(logger, s.Plans).ServeHTTP)
			r.Put("/pricing_plans/{uuid}", planupdate.New(logger, s.Plans).ServeHTTP)
			r.Delete("/pricing_plans/{uuid}", planremove.New(logger, s.Plans).ServeHTTP)

			r.Post("/transactions", transactioncreate.New(logger, s.Transactions).ServeHTTP)
			r.Get("/transactions", transactionlist.New(logger, s.Transactions).ServeHTTP)
			r.Put("/transactions/{uuid}", transactionupdate.New(logger, s.Transactions).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
