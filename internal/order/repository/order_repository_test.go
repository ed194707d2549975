package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/testutil"
)

func sampleOrder(userID int64, createdAt time.Time) domain.Order {
	address := "12 Nile St"
	return domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{{
			Width: 2, Length: 1.5, Area: 3, Quantity: 3, Category: domain.CategoryWindows,
			PricePerMeter: 100, Total: 900, Description: "sliding", Status: domain.ItemStatusWorking,
		}},
		TotalAmount:          900,
		Address:              &address,
		AdvancePayments:      []domain.Payment{{Amount: "200", Date: "2024-03-01"}, {Amount: "100"}},
		TotalAdvancePayments: 300,
		RemainingAmount:      600,
		CreatedAt:            createdAt,
		UpdatedAt:            createdAt,
	}
}

func TestNewSQLOrderRepository(t *testing.T) {
	db := &sqlx.DB{}
	repo := NewSQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)
	ctx := context.Background()

	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, sampleOrder(1, createdAt))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)
	assert.Equal(t, 900.0, found.TotalAmount)
	require.NotNil(t, found.Address)
	assert.Equal(t, "12 Nile St", *found.Address)
	assert.Equal(t, createdAt, found.CreatedAt)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "sliding", found.Items[0].Description)
	require.Len(t, found.AdvancePayments, 2)
	assert.Equal(t, domain.NumberInput("200"), found.AdvancePayments[0].Amount)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)

	order, err := repo.FindByID(context.Background(), 9999)
	assert.Nil(t, order)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestOrderRepository_FindByID_NullAddressAndLegacyItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)

	result, err := db.Exec(`
		INSERT INTO Orders (userId, items, totalAmount, address, advancePayments, totalAdvancePayments, remainingAmount, createdAt, updatedAt)
		VALUES (1, '[{"width":1,"length":1,"area":1,"quantity":1,"pricePerMeter":5,"total":5,"notes":"old note"}]', 5, NULL, '[]', 0, 5, 1700000000000, 1700000000000)
	`)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, order.Address)
	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.ItemStatusWorking, order.Items[0].Status)
	assert.Equal(t, "old note", order.Items[0].Description)
	assert.Empty(t, order.AdvancePayments)
}

func TestOrderRepository_Update_WritesOnlyGivenFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder(1, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	items := append([]domain.OrderItem(nil), created.Items...)
	items[0].Status = domain.ItemStatusDone
	updatedAt := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Update(ctx, created.ID, domain.OrderUpdate{
		Items:     items,
		UpdatedAt: &updatedAt,
	}))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusDone, found.Items[0].Status)
	assert.Equal(t, updatedAt, found.UpdatedAt)
	assert.Equal(t, created.CreatedAt, found.CreatedAt)
	assert.Equal(t, created.TotalAmount, found.TotalAmount)
	assert.Equal(t, created.AdvancePayments, found.AdvancePayments)
	assert.Equal(t, created.Address, found.Address)
}

func TestOrderRepository_Update_ClearsAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder(1, time.Now()))
	require.NoError(t, err)

	empty := ""
	require.NoError(t, repo.Update(ctx, created.ID, domain.OrderUpdate{Address: &empty}))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Address)
}

func TestOrderRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)

	total := 10.0
	err := repo.Update(context.Background(), 404, domain.OrderUpdate{TotalAmount: &total})
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Update(context.Background(), 404, domain.OrderUpdate{})
	_, ok = errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder(1, time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, created.ID)
	_, ok = errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_ListAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLOrderRepository(db)
	ctx := context.Background()

	older, err := repo.Create(ctx, sampleOrder(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, sampleOrder(2, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	orders, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}
