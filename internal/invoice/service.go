package invoice

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
	"github.com/KareemMohsenAli/kitchenProducts/internal/metrics"
)

type OrderFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	orders OrderFinder
	users  UserFinder
	bundle *i18n.Bundle
	layout Layout
	logger *zap.Logger
	now    func() time.Time
}

func NewService(orders OrderFinder, users UserFinder, bundle *i18n.Bundle, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		users:  users,
		bundle: bundle,
		layout: A4,
		logger: logger,
		now:    time.Now,
	}
}

// Build loads an order and its customer and builds the invoice in lang.
func (s *Service) Build(ctx context.Context, orderID int64, selected []int, lang string) (*Invoice, error) {
	ctx, span := tracing.StartSpan(ctx, "InvoiceService.Build", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, err
		}
		user = nil
	}

	loc := s.bundle.Localizer(lang)
	inv := Build(*order, user, selected, loc, s.layout, s.now())

	metrics.InvoicesRenderedTotal.WithLabelValues(loc.Lang()).Inc()
	s.logger.Info("invoice built",
		zap.Int64("orderId", orderID),
		zap.String("lang", loc.Lang()),
		zap.Int("lineCount", len(inv.Lines)),
		zap.Int("pageCount", len(inv.Pages)),
	)
	return inv, nil
}
