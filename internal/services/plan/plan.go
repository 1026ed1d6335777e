// Package plan содержит бизнес-логику работы с тарифными планами,
// включая сквозное кеширование публичных чтений.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Repository определяет методы для работы с тарифами в хранилище.
type Repository interface {
	// CreatePlan добавляет новый тариф и возвращает его uuid.
	CreatePlan(ctx context.Context, plan models.PricingPlan) (string, error)
	// ReadPlan возвращает тариф по uuid.
	ReadPlan(ctx context.Context, uid string) (*models.PricingPlan, error)
	// ListPlans возвращает страницу тарифов и общее количество.
	ListPlans(ctx context.Context, opts models.ListOptions) ([]*models.PricingPlan, int, error)
	// UpdatePlan обновляет поля тарифа по uuid.
	UpdatePlan(ctx context.Context, uid string, patch models.UpdatePlan) (int, error)
	// RemovePlan удаляет тариф по uuid, если на него нет ссылок.
	RemovePlan(ctx context.Context, uid string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с тарифами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создаёт новый тариф и возвращает его uuid.
// Если is_active не передан, тариф считается активным.
func (s *Service) Create(ctx context.Context, req models.DummyPlan) (string, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	plan := models.PricingPlan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     isActive,
		Features:     req.Features,
	}

	uid, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return "", err
	}
	s.log.Info("created new pricing plan", slog.String("uuid", uid))
	return uid, nil
}

// Read возвращает тариф по uuid, используя кеш или репозиторий.
// Тарифы читаются публично, поэтому это самый горячий путь чтения.
func (s *Service) Read(ctx context.Context, uid string) (*models.PricingPlan, error) {
	var result *models.PricingPlan
	cacheKey := fmt.Sprintf("plan:%s", uid)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache unavailable", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadPlan(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает страницу тарифов с сводкой пагинации.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.PricingPlan, models.Pagination, error) {
	rows, total, err := s.repo.ListPlans(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return rows, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Update применяет частичное обновление тарифа и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, uid string, req models.UpdatePlan) (int, error) {
	count, err := s.repo.UpdatePlan(ctx, uid, req)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("plan:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate plan cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет тариф по uuid и инвалидирует кеш.
// Хранилище откажет, если на тариф ссылается хотя бы один участник.
func (s *Service) Remove(ctx context.Context, uid string) (int, error) {
	count, err := s.repo.RemovePlan(ctx, uid)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("plan:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate plan cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}
