package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePlan(ctx context.Context, plan models.PricingPlan) (string, error) {
	args := m.Called(ctx, plan)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) ReadPlan(ctx context.Context, uid string) (*models.PricingPlan, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingPlan), args.Error(1)
}
func (m *RepoMock) ListPlans(ctx context.Context, opts models.ListOptions) ([]*models.PricingPlan, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.PricingPlan), args.Int(1), args.Error(2)
}
func (m *RepoMock) UpdatePlan(ctx context.Context, uid string, patch models.UpdatePlan) (int, error) {
	args := m.Called(ctx, uid, patch)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemovePlan(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestPlanService_Create(t *testing.T) {
	inactive := false

	tests := []struct {
		name       string
		req        models.DummyPlan
		setupMocks func(r *RepoMock)
		wantUID    string
		wantErr    error
	}{
		{
			name: "is_active defaults to true",
			req: models.DummyPlan{
				Name:         "Monthly",
				Price:        1500,
				DurationDays: 30,
				Features:     []string{"gym", "pool"},
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p models.PricingPlan) bool {
					return p.Name == "Monthly" && p.IsActive && len(p.Features) == 2
				})).Return("plan-uid", nil).Once()
			},
			wantUID: "plan-uid",
		},
		{
			name: "explicit is_active false is kept",
			req: models.DummyPlan{
				Name:         "Legacy",
				Price:        900,
				DurationDays: 30,
				IsActive:     &inactive,
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p models.PricingPlan) bool {
					return !p.IsActive
				})).Return("plan-uid", nil).Once()
			},
			wantUID: "plan-uid",
		},
		{
			name: "duplicate name propagates",
			req: models.DummyPlan{
				Name:         "Monthly",
				Price:        1500,
				DurationDays: 30,
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreatePlan", mock.Anything, mock.Anything).
					Return("", repository.ErrAlreadyExists).Once()
			},
			wantErr: repository.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, new(CacheMock), newNoopLogger())

			tt.setupMocks(repo)

			uid, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestPlanService_Read(t *testing.T) {
	plan := &models.PricingPlan{UUID: "plan-uid", Name: "Monthly", Price: 1500, DurationDays: 30}
	cacheKey := "plan:plan-uid"

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       *models.PricingPlan
		wantErr    bool
	}{
		{
			name: "cache hit",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", cacheKey, mock.Anything).Return(true, nil).
					Run(func(args mock.Arguments) {
						*args.Get(1).(**models.PricingPlan) = plan
					}).Once()
			},
			want: plan,
		},
		{
			name: "cache miss then repo success",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", cacheKey, mock.Anything).Return(false, nil).Once()
				r.On("ReadPlan", mock.Anything, "plan-uid").Return(plan, nil).Once()
				c.On("Set", cacheKey, plan, time.Hour).Return(nil).Once()
			},
			want: plan,
		},
		{
			name: "repo not found",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", cacheKey, mock.Anything).Return(false, nil).Once()
				r.On("ReadPlan", mock.Anything, "plan-uid").Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := New(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.Read(context.Background(), "plan-uid")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPlanService_Update(t *testing.T) {
	newPrice := 1990.0

	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	repo.On("UpdatePlan", mock.Anything, "plan-uid", mock.MatchedBy(func(p models.UpdatePlan) bool {
		return p.Price != nil && *p.Price == newPrice
	})).Return(1, nil).Once()
	cache.On("Invalidate", "plan:plan-uid").Return(nil).Once()

	count, err := svc.Update(context.Background(), "plan-uid", models.UpdatePlan{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPlanService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantCount  int
		wantErr    error
	}{
		{
			name: "success remove invalidates cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("RemovePlan", mock.Anything, "plan-uid").Return(1, nil).Once()
				c.On("Invalidate", "plan:plan-uid").Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "referenced plan is not removed",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("RemovePlan", mock.Anything, "plan-uid").
					Return(0, repository.ErrPlanInUse).Once()
			},
			wantErr: repository.ErrPlanInUse,
		},
		{
			name: "cache invalidate error does not fail remove",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("RemovePlan", mock.Anything, "plan-uid").Return(1, nil).Once()
				c.On("Invalidate", "plan:plan-uid").Return(errors.New("redis down")).Once()
			},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := New(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			count, err := svc.Remove(context.Background(), "plan-uid")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
