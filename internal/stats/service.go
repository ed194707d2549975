package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
)

type UserLister interface {
	ListAll(ctx context.Context) ([]domain.User, error)
}

type OrderLister interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type Service struct {
	users  UserLister
	orders OrderLister
	bundle *i18n.Bundle
	logger *zap.Logger
}

func NewService(users UserLister, orders OrderLister, bundle *i18n.Bundle, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		orders: orders,
		bundle: bundle,
		logger: logger,
	}
}

// Get computes statistics with labels in lang, or in the default language
// when lang is blank or unknown.
func (s *Service) Get(ctx context.Context, lang string) (*Statistics, error) {
	ctx, span := tracing.StartSpan(ctx, "StatsService.Get")
	defer span.End()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := Compute(users, orders, s.bundle.Localizer(lang))
	s.logger.Debug("statistics computed", zap.Int("orderCount", result.OrdersCount), zap.Int64("estimatedSize", result.EstimatedSize))
	return &result, nil
}
