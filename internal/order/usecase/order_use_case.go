package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/dto"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
	"github.com/KareemMohsenAli/kitchenProducts/internal/ledger"
	"github.com/KareemMohsenAli/kitchenProducts/internal/metrics"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, id int64, update domain.OrderUpdate) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type UserService interface {
	FindOrCreate(ctx context.Context, name string) (*domain.User, error)
}

type OrderUseCase struct {
	orderRepo OrderRepository
	userRepo  UserRepository
	users     UserService
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderUseCase(orderRepo OrderRepository, userRepo UserRepository, users UserService, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// Create finds or creates the customer and stores a new order with its
// derived totals.
func (uc *OrderUseCase) Create(ctx context.Context, req dto.OrderRequest) (*dto.OrderDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.Create")
	defer span.End()

	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	user, err := uc.users.FindOrCreate(ctx, req.CustomerName)
	if err != nil {
		return nil, err
	}

	items := buildItems(req.Items)
	payments := normalizePayments(req.AdvancePayments)
	totals := ledger.ComputeTotals(items, payments)
	now := uc.timestamp()

	var address *string
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		a := strings.TrimSpace(*req.Address)
		address = &a
	}

	created, err := uc.orderRepo.Create(ctx, domain.Order{
		UserID:               user.ID,
		Items:                items,
		TotalAmount:          totals.TotalAmount,
		Address:              address,
		AdvancePayments:      payments,
		TotalAdvancePayments: totals.TotalAdvancePayments,
		RemainingAmount:      totals.RemainingAmount,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		uc.logger.Error("failed to create order", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int64("order.id", created.ID))
	metrics.OrdersCreatedTotal.Inc()
	uc.logger.Info("order created",
		zap.Int64("orderId", created.ID),
		zap.Int64("userId", user.ID),
		zap.Int("itemCount", len(items)),
		zap.Float64("totalAmount", created.TotalAmount),
	)
	if created.RemainingAmount < 0 {
		uc.logger.Warn("order is overpaid", zap.Int64("orderId", created.ID), zap.Float64("remainingAmount", created.RemainingAmount))
	}

	details := newDetails(*created)
	details.CustomerName = user.Name
	return &details, nil
}

func (uc *OrderUseCase) Get(ctx context.Context, id int64) (*dto.OrderDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withCustomer(ctx, *order)
}

// List returns every order, newest first, narrowed by query when it is not
// blank. The summary covers the returned orders only.
func (uc *OrderUseCase) List(ctx context.Context, query string) (*dto.OrderListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.List")
	defer span.End()

	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	resp := &dto.OrderListResponse{Orders: []dto.OrderDetails{}}
	var amounts []float64
	for _, order := range orders {
		details := newDetails(order)
		if name, ok := names[order.UserID]; ok {
			details.CustomerName = name
		} else {
			details.CustomerName = domain.UnknownUserLabel(order.UserID)
			details.Orphan = true
		}

		if !MatchesSearch(details, query) {
			continue
		}
		resp.Orders = append(resp.Orders, details)
		amounts = append(amounts, order.TotalAmount)
	}

	resp.Summary = dto.OrderListSummary{
		Count:       len(resp.Orders),
		TotalAmount: ledger.Sum(amounts),
	}
	return resp, nil
}

// resolveCustomer keeps the current owner when the name is unchanged, so an
// edit never creates a user unless the customer really changed.
func (uc *OrderUseCase) resolveCustomer(ctx context.Context, ownerID int64, name string) (int64, error) {
	owner, err := uc.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return 0, err
		}
	} else if owner.Name == strings.TrimSpace(name) {
		return owner.ID, nil
	}

	user, err := uc.users.FindOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Update replaces the items of an order, and optionally its customer,
// address and payments, then recomputes every total.
func (uc *OrderUseCase) Update(ctx context.Context, id int64, req dto.OrderRequest) (*dto.OrderDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	existing, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	userID, err := uc.resolveCustomer(ctx, existing.UserID, req.CustomerName)
	if err != nil {
		return nil, err
	}

	items := buildItems(req.Items)
	payments := existing.AdvancePayments
	if req.AdvancePayments != nil {
		payments = normalizePayments(req.AdvancePayments)
	}
	totals := ledger.ComputeTotals(items, payments)
	now := uc.timestamp()

	update := domain.OrderUpdate{
		UserID:               &userID,
		Items:                items,
		TotalAmount:          &totals.TotalAmount,
		AdvancePayments:      payments,
		TotalAdvancePayments: &totals.TotalAdvancePayments,
		RemainingAmount:      &totals.RemainingAmount,
		UpdatedAt:            &now,
	}
	if req.Address != nil {
		a := strings.TrimSpace(*req.Address)
		update.Address = &a
	}

	if err := uc.orderRepo.Update(ctx, id, update); err != nil {
		uc.logger.Error("failed to update order", zap.Int64("orderId", id), zap.Error(err))
		return nil, err
	}

	metrics.OrdersUpdatedTotal.WithLabelValues("edit").Inc()
	uc.logger.Info("order updated", zap.Int64("orderId", id), zap.Int64("userId", userID), zap.Float64("totalAmount", totals.TotalAmount))

	return uc.Get(ctx, id)
}

// ToggleItemStatus flips the item at index between working and done.
func (uc *OrderUseCase) ToggleItemStatus(ctx context.Context, id int64, index int) (*dto.OrderDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.ToggleItemStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.Int("item.index", index),
	))
	defer span.End()

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(order.Items) {
		return nil, apperrors.NewValidationError("item index out of range", apperrors.ValidationDetail{
			Field:   "index",
			Message: "index must be between 0 and " + strconv.Itoa(len(order.Items)-1),
		})
	}

	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	items[index] = ledger.ToggleItemStatus(items[index])
	now := uc.timestamp()

	if err := uc.orderRepo.Update(ctx, id, domain.OrderUpdate{Items: items, UpdatedAt: &now}); err != nil {
		uc.logger.Error("failed to toggle item status", zap.Int64("orderId", id), zap.Int("index", index), zap.Error(err))
		return nil, err
	}

	metrics.OrdersUpdatedTotal.WithLabelValues("status").Inc()
	uc.logger.Info("item status toggled", zap.Int64("orderId", id), zap.Int("index", index), zap.String("status", string(items[index].Status)))

	return uc.Get(ctx, id)
}

// UpdatePayments replaces the advance payments of an order and recomputes
// the payment aggregates against its stored total.
func (uc *OrderUseCase) UpdatePayments(ctx context.Context, id int64, payments []domain.Payment) (*dto.OrderDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.UpdatePayments", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments = normalizePayments(payments)
	agg := ledger.ComputeAdvanceAggregate(order.TotalAmount, payments)
	now := uc.timestamp()

	err = uc.orderRepo.Update(ctx, id, domain.OrderUpdate{
		AdvancePayments:      payments,
		TotalAdvancePayments: &agg.Total,
		RemainingAmount:      &agg.Remaining,
		UpdatedAt:            &now,
	})
	if err != nil {
		uc.logger.Error("failed to update payments", zap.Int64("orderId", id), zap.Error(err))
		return nil, err
	}

	metrics.OrdersUpdatedTotal.WithLabelValues("payments").Inc()
	uc.logger.Info("payments updated", zap.Int64("orderId", id), zap.Int("paymentCount", len(payments)), zap.Float64("remainingAmount", agg.Remaining))

	return uc.Get(ctx, id)
}

func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "OrderUseCase.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.OrdersDeletedTotal.Inc()
	uc.logger.Info("order deleted", zap.Int64("orderId", id))
	return nil
}

func (uc *OrderUseCase) withCustomer(ctx context.Context, order domain.Order) (*dto.OrderDetails, error) {
	details := newDetails(order)

	user, err := uc.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, err
		}
		details.CustomerName = domain.UnknownUserLabel(order.UserID)
		details.Orphan = true
		return &details, nil
	}

	details.CustomerName = user.Name
	return &details, nil
}

func newDetails(order domain.Order) dto.OrderDetails {
	return dto.OrderDetails{
		Order:    order,
		Overpaid: order.RemainingAmount < 0,
	}
}

// timestamp is the current time at the millisecond precision the store keeps.
func (uc *OrderUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Millisecond)
}

func buildItems(inputs []ledger.ItemInput) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, ledger.BuildItem(in))
	}
	return items
}

func normalizePayments(payments []domain.Payment) []domain.Payment {
	if payments == nil {
		return []domain.Payment{}
	}
	return payments
}
