// Package transaction содержит бизнес-логику платёжных транзакций.
//
// Перед созданием транзакции существование участника и тарифа проверяется
// заранее, чтобы вернуть клиенту осмысленный код вместо голого нарушения
// внешнего ключа. Завершённый платёж с тарифом продлевает подписку участника.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// Repository определяет методы для работы с транзакциями в хранилище.
type Repository interface {
	// CreateTransaction добавляет новую транзакцию и возвращает её uuid.
	CreateTransaction(ctx context.Context, tx models.Transaction) (string, error)
	// ReadTransaction возвращает транзакцию по uuid.
	ReadTransaction(ctx context.Context, uid string) (*models.Transaction, error)
	// ListTransactions возвращает страницу транзакций и общее количество.
	ListTransactions(ctx context.Context, opts models.ListOptions) ([]*models.Transaction, int, error)
	// UpdateTransaction обновляет статус и способ оплаты транзакции.
	UpdateTransaction(ctx context.Context, uid string, patch models.UpdateTransaction) (int, error)
}

// MemberStore нужен для проверки участника и продления его подписки.
type MemberStore interface {
	ReadMember(ctx context.Context, uid string) (*models.Member, error)
	UpdateMember(ctx context.Context, uid string, patch models.MemberPatch) (int, error)
}

// PlanReader нужен для проверки тарифа и вычисления окна подписки.
type PlanReader interface {
	ReadPlan(ctx context.Context, uid string) (*models.PricingPlan, error)
}

// Cache нужен для сброса закешированного профиля участника после того,
// как завершённый платёж изменил его подписку.
type Cache interface {
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с транзакциями.
type Service struct {
	repo    Repository
	members MemberStore
	plans   PlanReader
	cache   Cache
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, members MemberStore, plans PlanReader, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		plans:   plans,
		cache:   cache,
		log:     log,
	}
}

const dateLayout = "2006-01-02"

// Create создаёт новую транзакцию. Статус по умолчанию — pending,
// дата — текущий день. Завершённый платёж сразу продлевает подписку.
func (s *Service) Create(ctx context.Context, req models.DummyTransaction) (string, error) {
	if _, err := s.members.ReadMember(ctx, req.MemberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("member: %w", repository.ErrInvalidReference)
		}
		return "", fmt.Errorf("member: %w", err)
	}

	var plan *models.PricingPlan
	var planID *string
	if req.PlanID != "" {
		var err error
		plan, err = s.plans.ReadPlan(ctx, req.PlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", fmt.Errorf("plan: %w", repository.ErrInvalidReference)
			}
			return "", fmt.Errorf("plan: %w", err)
		}
		planID = &req.PlanID
	}

	txDate := time.Now()
	if req.TransactionDate != "" {
		parsed, err := time.Parse(dateLayout, req.TransactionDate)
		if err != nil {
			return "", fmt.Errorf("invalid transaction_date: %w", err)
		}
		txDate = parsed
	}

	status := models.TransactionPending
	if req.Status != "" {
		status = req.Status
	}

	tx := models.Transaction{
		MemberID:        req.MemberID,
		PlanID:          planID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Status:          status,
		TransactionDate: txDate,
	}

	uid, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return "", err
	}
	s.log.Info("created new transaction", slog.String("uuid", uid), slog.String("status", status))

	if status == models.TransactionCompleted {
		s.applyCompletedPayment(ctx, req.MemberID, plan, txDate)
	}
	return uid, nil
}

// Read возвращает транзакцию по uuid.
func (s *Service) Read(ctx context.Context, uid string) (*models.Transaction, error) {
	return s.repo.ReadTransaction(ctx, uid)
}

// List возвращает страницу транзакций с сводкой пагинации.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.Transaction, models.Pagination, error) {
	rows, total, err := s.repo.ListTransactions(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return rows, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// Update меняет статус или способ оплаты транзакции. Перевод в completed
// продлевает подписку участника, если транзакция привязана к тарифу.
func (s *Service) Update(ctx context.Context, uid string, req models.UpdateTransaction) (int, error) {
	current, err := s.repo.ReadTransaction(ctx, uid)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateTransaction(ctx, uid, req)
	if err != nil {
		return 0, err
	}

	becameCompleted := req.Status != nil &&
		*req.Status == models.TransactionCompleted &&
		current.Status != models.TransactionCompleted
	if becameCompleted {
		var plan *models.PricingPlan
		if current.PlanID != nil {
			plan, err = s.plans.ReadPlan(ctx, *current.PlanID)
			if err != nil {
				s.log.Error("failed to read plan for completed transaction",
					slog.String("transaction", uid), slog.Any("err", err))
				return count, nil
			}
		}
		s.applyCompletedPayment(ctx, current.MemberID, plan, current.TransactionDate)
	}
	return count, nil
}

// applyCompletedPayment обновляет дату последнего платежа участника
// и окно подписки, когда платёж привязан к тарифу. Профиль участника
// сбрасывается из кеша, иначе /members/me отдаёт прежнюю подписку.
// Ошибка здесь не отменяет уже записанную транзакцию, только логируется.
func (s *Service) applyCompletedPayment(ctx context.Context, memberID string, plan *models.PricingPlan, paidAt time.Time) {
	patch := models.MemberPatch{LastPaymentDate: &paidAt}
	if plan != nil {
		expiry := paidAt.AddDate(0, 0, plan.DurationDays)
		patch.SubscriptionPlanID = &plan.UUID
		patch.SubscriptionStart = &paidAt
		patch.SubscriptionExpiry = &expiry
	}
	if _, err := s.members.UpdateMember(ctx, memberID, patch); err != nil {
		s.log.Error("failed to apply payment to member",
			slog.String("member", memberID), slog.Any("err", err))
		return
	}

	cacheKey := fmt.Sprintf("member:%s", memberID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate member cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
