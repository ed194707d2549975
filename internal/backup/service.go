package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
	"github.com/KareemMohsenAli/kitchenProducts/internal/ledger"
	"github.com/KareemMohsenAli/kitchenProducts/internal/metrics"
)

const filenamePrefix = "eslam-aluminum-orders-backup-"

type backupService struct {
	repo   Repository
	users  UserLister
	orders OrderLister
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserLister, orders OrderLister, logger *zap.Logger) Service {
	return &backupService{
		repo:   repo,
		users:  users,
		orders: orders,
		logger: logger,
		now:    time.Now,
	}
}

func (s *backupService) Export(ctx context.Context) (*Snapshot, error) {
	ctx, span := tracing.StartSpan(ctx, "BackupService.Export")
	defer span.End()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	metrics.BackupExportsTotal.Inc()
	s.logger.Info("backup exported", zap.Int("userCount", len(users)), zap.Int("orderCount", len(orders)))

	return &Snapshot{
		Users:      users,
		Orders:     orders,
		ExportDate: s.now().UTC().Truncate(time.Millisecond),
	}, nil
}

// Import replaces the store with the contents of a backup file. Nothing is
// written unless the whole file decodes.
func (s *backupService) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	ctx, span := tracing.StartSpan(ctx, "BackupService.Import")
	defer span.End()

	users, orders, err := Decode(data)
	if err != nil {
		metrics.BackupImportsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	legacy := normalizeOrders(orders)

	if err := s.repo.ReplaceAll(ctx, users, orders); err != nil {
		metrics.BackupImportsTotal.WithLabelValues("error").Inc()
		s.logger.Error("failed to import backup", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to import backup", err)
	}

	metrics.BackupImportsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("backup imported",
		zap.Int("userCount", len(users)),
		zap.Int("orderCount", len(orders)),
		zap.Int("legacyOrderCount", legacy),
	)

	return &ImportResult{Users: len(users), Orders: len(orders), LegacyOrders: legacy}, nil
}

func (s *backupService) Filename(now time.Time) string {
	return Filename(now)
}

// Filename is the suggested download name of a backup taken at now.
func Filename(now time.Time) string {
	return filenamePrefix + now.Format("2006-01-02") + ".json"
}

// Decode parses a backup file. The file must be a JSON object carrying both
// a users array and an orders array, and ids must be unique per collection.
func Decode(data []byte) ([]domain.User, []domain.Order, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, apperrors.NewImportFormatError("backup is not a valid JSON object", err)
	}

	usersRaw, err := requireArray(raw, "users")
	if err != nil {
		return nil, nil, err
	}
	ordersRaw, err := requireArray(raw, "orders")
	if err != nil {
		return nil, nil, err
	}

	var users []domain.User
	if err := json.Unmarshal(usersRaw, &users); err != nil {
		return nil, nil, apperrors.NewImportFormatError("backup users are malformed", err)
	}
	var orders []domain.Order
	if err := json.Unmarshal(ordersRaw, &orders); err != nil {
		return nil, nil, apperrors.NewImportFormatError("backup orders are malformed", err)
	}

	seenUsers := make(map[int64]struct{}, len(users))
	for _, u := range users {
		if _, dup := seenUsers[u.ID]; dup {
			return nil, nil, apperrors.NewImportFormatError(fmt.Sprintf("duplicate user id %d", u.ID), nil)
		}
		seenUsers[u.ID] = struct{}{}
	}
	seenOrders := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		if _, dup := seenOrders[o.ID]; dup {
			return nil, nil, apperrors.NewImportFormatError(fmt.Sprintf("duplicate order id %d", o.ID), nil)
		}
		seenOrders[o.ID] = struct{}{}
	}

	if users == nil {
		users = []domain.User{}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return users, orders, nil
}

func requireArray(raw map[string]json.RawMessage, key string) (json.RawMessage, error) {
	value, ok := raw[key]
	if !ok {
		return nil, apperrors.NewImportFormatError(fmt.Sprintf("backup is missing %q", key), nil)
	}
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.NewImportFormatError(fmt.Sprintf("backup %q must be an array", key), nil)
	}
	return trimmed, nil
}

// normalizeOrders recomputes the payment aggregates of orders read from the
// single-payment shape and fills a missing updatedAt from createdAt. It
// returns how many legacy orders it touched.
func normalizeOrders(orders []domain.Order) int {
	legacy := 0
	for i := range orders {
		o := &orders[i]
		if o.LegacyPayments() {
			agg := ledger.ComputeAdvanceAggregate(o.TotalAmount, o.AdvancePayments)
			o.TotalAdvancePayments = agg.Total
			o.RemainingAmount = agg.Remaining
			legacy++
		}
		if o.UpdatedAt.IsZero() {
			o.UpdatedAt = o.CreatedAt
		}
	}
	return legacy
}
