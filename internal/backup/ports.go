package backup

import (
	"context"
	"time"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
)

type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, data []byte) (*ImportResult, error)
	Filename(now time.Time) string
}

// Repository replaces the whole store in one transaction.
type Repository interface {
	ReplaceAll(ctx context.Context, users []domain.User, orders []domain.Order) error
}

type UserLister interface {
	ListAll(ctx context.Context) ([]domain.User, error)
}

type OrderLister interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
}
