// Package gymmembership собирает приложение: хранилище, миграции, кеш,
// сервисы и HTTP-сервер с маршрутами.
package gymmembership

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/migrations"
	authservice "github.com/magabrotheeeer/gym-membership/internal/services/auth"
	memberservice "github.com/magabrotheeeer/gym-membership/internal/services/member"
	planservice "github.com/magabrotheeeer/gym-membership/internal/services/plan"
	transactionservice "github.com/magabrotheeeer/gym-membership/internal/services/transaction"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// App объединяет HTTP-сервер и соединения, требующие закрытия при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключает базу, применяет миграции, поднимает кеш и строит роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	maker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	planService := planservice.New(db, cacheRedis, logger)
	memberService := memberservice.New(db, db, cacheRedis, logger)
	transactionService := transactionservice.New(db, db, db, cacheRedis, logger)
	authService := authservice.New(db, maker, cfg.OAuth, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Members:      memberService,
		Plans:        planService,
		Transactions: transactionService,
		Auth:         authService,
		Storage:      db,
	}, maker, cfg.AdminAPIKey)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		a.cache.Db.Close()
		return err
	}
}
