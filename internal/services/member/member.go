// Package member содержит бизнес-логику работы с участниками зала,
// включая кеширование профилей и агрегированную статистику.
package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Repository определяет методы для работы с участниками в хранилище.
type Repository interface {
	// CreateMember добавляет нового участника и возвращает его uuid.
	CreateMember(ctx context.Context, m models.Member, passwordHash string) (string, error)
	// ReadMember возвращает участника по uuid.
	ReadMember(ctx context.Context, uid string) (*models.Member, error)
	// ListMembers возвращает страницу участников и общее количество.
	ListMembers(ctx context.Context, opts models.ListOptions) ([]*models.Member, int, error)
	// UpdateMember обновляет поля участника по uuid.
	UpdateMember(ctx context.Context, uid string, patch models.MemberPatch) (int, error)
	// RemoveMember удаляет участника по uuid.
	RemoveMember(ctx context.Context, uid string) (int, error)
	// MemberStats считает агрегированные показатели.
	MemberStats(ctx context.Context) (*models.MemberStats, error)
}

// PlanReader нужен для предварительной проверки существования тарифа.
type PlanReader interface {
	ReadPlan(ctx context.Context, uid string) (*models.PricingPlan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с участниками.
type Service struct {
	repo  Repository
	plans PlanReader
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, plans PlanReader, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		plans: plans,
		cache: cache,
		log:   log,
	}
}

const dateLayout = "2006-01-02"

// Create создаёт нового участника. Если указан тариф, его существование
// проверяется заранее, а окно подписки вычисляется из длительности тарифа.
func (s *Service) Create(ctx context.Context, req models.DummyMember) (string, error) {
	m := models.Member{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if req.SubscriptionPlanID != "" {
		plan, err := s.plans.ReadPlan(ctx, req.SubscriptionPlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", fmt.Errorf("subscription plan: %w", repository.ErrInvalidReference)
			}
			return "", fmt.Errorf("subscription plan: %w", err)
		}
		now := time.Now()
		expiry := now.AddDate(0, 0, plan.DurationDays)
		m.SubscriptionPlanID = &req.SubscriptionPlanID
		m.SubscriptionStart = &now
		m.SubscriptionExpiry = &expiry
	}

	uid, err := s.repo.CreateMember(ctx, m, "")
	if err != nil {
		return "", err
	}
	s.log.Info("created new member", slog.String("uuid", uid))
	return uid, nil
}

// Read возвращает участника по uuid, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, uid string) (*models.Member, error) {
	var result *models.Member
	cacheKey := fmt.Sprintf("member:%s", uid)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache unavailable", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadMember(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает страницу участников с сводкой пагинации.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.Member, models.Pagination, error) {
	rows, total, err := s.repo.ListMembers(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return rows, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Update применяет частичное обновление участника и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, uid string, req models.UpdateMember) (int, error) {
	patch := models.MemberPatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if req.SubscriptionPlanID != nil {
		if _, err := s.plans.ReadPlan(ctx, *req.SubscriptionPlanID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, fmt.Errorf("subscription plan: %w", repository.ErrInvalidReference)
			}
			return 0, fmt.Errorf("subscription plan: %w", err)
		}
		patch.SubscriptionPlanID = req.SubscriptionPlanID
	}
	if req.SubscriptionStart != nil {
		start, err := time.Parse(dateLayout, *req.SubscriptionStart)
		if err != nil {
			return 0, fmt.Errorf("invalid subscription_start: %w", err)
		}
		patch.SubscriptionStart = &start
	}
	if req.SubscriptionExpiry != nil {
		expiry, err := time.Parse(dateLayout, *req.SubscriptionExpiry)
		if err != nil {
			return 0, fmt.Errorf("invalid subscription_expiry: %w", err)
		}
		patch.SubscriptionExpiry = &expiry
	}

	count, err := s.repo.UpdateMember(ctx, uid, patch)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("member:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate member cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет участника по uuid и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, uid string) (int, error) {
	cacheKey := fmt.Sprintf("member:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate member cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveMember(ctx, uid)
}

// Stats возвращает агрегированные счётчики по участникам.
func (s *Service) Stats(ctx context.Context) (*models.MemberStats, error) {
	return s.repo.MemberStats(ctx)
}
