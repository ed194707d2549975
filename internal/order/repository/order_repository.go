package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
)

const orderColumns = `id, userId, items, totalAmount, address, advancePayments, totalAdvancePayments, remainingAmount, createdAt, updatedAt`

// OrderRow is the stored form of an order. Items and payments are kept as
// JSON text.
type OrderRow struct {
	ID                   int64          `db:"id"`
	UserID               int64          `db:"userId"`
	Items                string         `db:"items"`
	TotalAmount          float64        `db:"totalAmount"`
	Address              sql.NullString `db:"address"`
	AdvancePayments      string         `db:"advancePayments"`
	TotalAdvancePayments float64        `db:"totalAdvancePayments"`
	RemainingAmount      float64        `db:"remainingAmount"`
	CreatedAt            int64          `db:"createdAt"`
	UpdatedAt            int64          `db:"updatedAt"`
}

func NewOrderRow(o domain.Order) (OrderRow, error) {
	items, err := encodeItems(o.Items)
	if err != nil {
		return OrderRow{}, err
	}
	payments, err := encodePayments(o.AdvancePayments)
	if err != nil {
		return OrderRow{}, err
	}

	return OrderRow{
		ID:                   o.ID,
		UserID:               o.UserID,
		Items:                items,
		TotalAmount:          o.TotalAmount,
		Address:              nullString(o.Address),
		AdvancePayments:      payments,
		TotalAdvancePayments: o.TotalAdvancePayments,
		RemainingAmount:      o.RemainingAmount,
		CreatedAt:            database.ToMillis(o.CreatedAt),
		UpdatedAt:            database.ToMillis(o.UpdatedAt),
	}, nil
}

func (r OrderRow) ToDomain() (domain.Order, error) {
	order := domain.Order{
		ID:                   r.ID,
		UserID:               r.UserID,
		Items:                []domain.OrderItem{},
		TotalAmount:          r.TotalAmount,
		AdvancePayments:      []domain.Payment{},
		TotalAdvancePayments: r.TotalAdvancePayments,
		RemainingAmount:      r.RemainingAmount,
		CreatedAt:            database.FromMillis(r.CreatedAt),
		UpdatedAt:            database.FromMillis(r.UpdatedAt),
	}
	if r.Address.Valid {
		address := r.Address.String
		order.Address = &address
	}

	if r.Items != "" {
		if err := json.Unmarshal([]byte(r.Items), &order.Items); err != nil {
			return domain.Order{}, fmt.Errorf("decoding items of order %d: %w", r.ID, err)
		}
	}
	if r.AdvancePayments != "" {
		if err := json.Unmarshal([]byte(r.AdvancePayments), &order.AdvancePayments); err != nil {
			return domain.Order{}, fmt.Errorf("decoding payments of order %d: %w", r.ID, err)
		}
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	if order.AdvancePayments == nil {
		order.AdvancePayments = []domain.Payment{}
	}
	return order, nil
}

type SQLOrderRepository struct {
	db *sqlx.DB
}

func NewSQLOrderRepository(db *sqlx.DB) *SQLOrderRepository {
	return &SQLOrderRepository{db: db}
}

func (r *SQLOrderRepository) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	row, err := NewOrderRow(order)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO Orders (userId, items, totalAmount, address, advancePayments, totalAdvancePayments, remainingAmount, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		row.UserID, row.Items, row.TotalAmount, row.Address, row.AdvancePayments,
		row.TotalAdvancePayments, row.RemainingAmount, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted order id: %w", err)
	}

	row.ID = id
	created, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *SQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`

	var row OrderRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order: %w", err)
	}

	order, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update writes only the non-nil fields of update.
func (r *SQLOrderRepository) Update(ctx context.Context, id int64, update domain.OrderUpdate) error {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.UserID != nil {
		set("userId", *update.UserID)
	}
	if update.Items != nil {
		items, err := encodeItems(update.Items)
		if err != nil {
			return err
		}
		set("items", items)
	}
	if update.TotalAmount != nil {
		set("totalAmount", *update.TotalAmount)
	}
	if update.Address != nil {
		set("address", nullString(update.Address))
	}
	if update.AdvancePayments != nil {
		payments, err := encodePayments(update.AdvancePayments)
		if err != nil {
			return err
		}
		set("advancePayments", payments)
	}
	if update.TotalAdvancePayments != nil {
		set("totalAdvancePayments", *update.TotalAdvancePayments)
	}
	if update.RemainingAmount != nil {
		set("remainingAmount", *update.RemainingAmount)
	}
	if update.UpdatedAt != nil {
		set("updatedAt", database.ToMillis(*update.UpdatedAt))
	}

	if len(sets) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}

	query := `UPDATE Orders SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return nil
}

func (r *SQLOrderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return nil
}

// ListAll returns every order, newest first.
func (r *SQLOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders ORDER BY createdAt DESC, id DESC`

	var rows []OrderRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func encodeItems(items []domain.OrderItem) (string, error) {
	if items == nil {
		items = []domain.OrderItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return string(data), nil
}

func encodePayments(payments []domain.Payment) (string, error) {
	if payments == nil {
		payments = []domain.Payment{}
	}
	data, err := json.Marshal(payments)
	if err != nil {
		return "", fmt.Errorf("encoding payments: %w", err)
	}
	return string(data), nil
}

func nullString(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
