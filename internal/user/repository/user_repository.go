package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
)

// UserRow is the stored form of a user.
type UserRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"createdAt"`
}

func NewUserRow(u domain.User) UserRow {
	return UserRow{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: database.ToMillis(u.CreatedAt),
	}
}

func (r UserRow) ToDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: database.FromMillis(r.CreatedAt),
	}
}

type SQLUserRepository struct {
	db *sqlx.DB
}

func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// FindByName returns the oldest user whose name matches exactly, case
// included.
func (r *SQLUserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT id, name, createdAt FROM Users WHERE name = ? ORDER BY id LIMIT 1`

	var row UserRow
	err := r.db.GetContext(ctx, &row, query, name)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user named %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by name: %w", err)
	}

	user := row.ToDomain()
	return &user, nil
}

func (r *SQLUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, createdAt FROM Users WHERE id = ?`

	var row UserRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	user := row.ToDomain()
	return &user, nil
}

func (r *SQLUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	row := NewUserRow(user)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO Users (name, createdAt) VALUES (?, ?)`,
		row.Name, row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted user id: %w", err)
	}

	row.ID = id
	created := row.ToDomain()
	return &created, nil
}

func (r *SQLUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var rows []UserRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, createdAt FROM Users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.ToDomain())
	}
	return users, nil
}

type userSummaryRow struct {
	UserRow
	OrderCount int `db:"orderCount"`
}

// ListWithOrderCounts returns every user, newest first, with the number of
// orders each one owns.
func (r *SQLUserRepository) ListWithOrderCounts(ctx context.Context) ([]domain.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.createdAt, COUNT(o.id) AS orderCount
		FROM Users u
		LEFT JOIN Orders o ON o.userId = u.id
		GROUP BY u.id, u.name, u.createdAt
		ORDER BY u.createdAt DESC, u.id DESC
	`

	var rows []userSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying users with order counts: %w", err)
	}

	summaries := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.UserSummary{
			User:       row.UserRow.ToDomain(),
			OrderCount: row.OrderCount,
		})
	}
	return summaries, nil
}

// Delete removes a user that owns no orders. The order count and the delete
// run in one transaction.
func (r *SQLUserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var orderCount int
	if err := tx.GetContext(ctx, &orderCount, `SELECT COUNT(*) FROM Orders WHERE userId = ?`, id); err != nil {
		return fmt.Errorf("counting user orders: %w", err)
	}
	if orderCount > 0 {
		return errors.NewConflictError(fmt.Sprintf("user with id %d still owns %d orders", id, orderCount))
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM Users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user delete: %w", err)
	}
	return nil
}
