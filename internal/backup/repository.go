package backup

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	orderrepo "github.com/KareemMohsenAli/kitchenProducts/internal/order/repository"
	userrepo "github.com/KareemMohsenAli/kitchenProducts/internal/user/repository"
)

type sqlRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) ReplaceAll(ctx context.Context, users []domain.User, orders []domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearStore(ctx, tx); err != nil {
		return err
	}
	if err := bulkInsert(ctx, tx, users, orders); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

func clearStore(ctx context.Context, tx *sqlx.Tx) error {
	for _, table := range []string{"Orders", "Users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// bulkInsert writes the records with their own ids and timestamps.
func bulkInsert(ctx context.Context, tx *sqlx.Tx, users []domain.User, orders []domain.Order) error {
	for _, u := range users {
		row := userrepo.NewUserRow(u)
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO Users (id, name, createdAt) VALUES (:id, :name, :createdAt)`,
			row,
		)
		if err != nil {
			return fmt.Errorf("inserting user %d: %w", u.ID, err)
		}
	}

	for _, o := range orders {
		row, err := orderrepo.NewOrderRow(o)
		if err != nil {
			return err
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO Orders (id, userId, items, totalAmount, address, advancePayments, totalAdvancePayments, remainingAmount, createdAt, updatedAt)
			VALUES (:id, :userId, :items, :totalAmount, :address, :advancePayments, :totalAdvancePayments, :remainingAmount, :createdAt, :updatedAt)
		`, row)
		if err != nil {
			return fmt.Errorf("inserting order %d: %w", o.ID, err)
		}
	}
	return nil
}
