package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
	"github.com/KareemMohsenAli/kitchenProducts/internal/metrics"
)

type UserRepository interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	ListWithOrderCounts(ctx context.Context) ([]domain.UserSummary, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	repo        UserRepository
	logger      *zap.Logger
	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
}

func NewUserService(repo UserRepository, logger *zap.Logger, maxAttempts int, retryDelay time.Duration) *UserService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &UserService{
		repo:        repo,
		logger:      logger,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		now:         time.Now,
	}
}

// FindOrCreate returns the user whose name matches exactly after trimming,
// creating it when none exists. The lookup and insert are retried together
// up to maxAttempts times with a fixed delay between attempts.
func (s *UserService) FindOrCreate(ctx context.Context, name string) (*domain.User, error) {
	ctx, span := tracing.StartSpan(ctx, "UserService.FindOrCreate")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required", apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName must not be empty",
		})
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		user, err := s.findOrCreateOnce(ctx, name)
		if err == nil {
			return user, nil
		}
		lastErr = err

		if attempt == s.maxAttempts {
			break
		}

		s.logger.Warn("user create failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", s.maxAttempts),
			zap.Bool("transient", database.IsTransientError(err)),
			zap.Error(err),
		)
		metrics.UserCreateRetriesTotal.Inc()

		select {
		case <-ctx.Done():
			return nil, apperrors.NewInternalError("user creation cancelled", ctx.Err())
		case <-time.After(s.retryDelay):
		}
	}

	s.logger.Error("user create failed", zap.Int("attempts", s.maxAttempts), zap.Error(lastErr))
	return nil, apperrors.NewInternalError("failed to create user", lastErr)
}

func (s *UserService) findOrCreateOnce(ctx context.Context, name string) (*domain.User, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Name:      name,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info("user created", zap.Int64("userId", created.ID))
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "UserService.List")
	defer span.End()

	return s.repo.ListWithOrderCounts(ctx)
}

// Delete removes a user that owns no orders.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "UserService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	s.logger.Info("user deleted", zap.Int64("userId", id))
	return nil
}
