package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/testutil"
	userrepo "github.com/KareemMohsenAli/kitchenProducts/internal/user/repository"
)

func TestReplaceAll_FailedInsertRollsBackClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userrepo.NewSQLUserRepository(db)
	ctx := context.Background()

	_, err := users.Create(ctx, domain.User{Name: "Kept", CreatedAt: time.Now()})
	require.NoError(t, err)

	repo := NewSQLRepository(db)
	dupes := []domain.User{{ID: 5, Name: "a", CreatedAt: time.Now()}, {ID: 5, Name: "b", CreatedAt: time.Now()}}
	err = repo.ReplaceAll(ctx, dupes, nil)
	require.Error(t, err)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Kept", all[0].Name)
}

func TestReplaceAll_PreservesIDsAndTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLRepository(db)
	ctx := context.Background()

	createdAt := time.Date(2022, 12, 1, 8, 0, 0, 0, time.UTC)
	err := repo.ReplaceAll(ctx, []domain.User{{ID: 40, Name: "Laila", CreatedAt: createdAt}}, nil)
	require.NoError(t, err)

	user, err := userrepo.NewSQLUserRepository(db).FindByID(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, createdAt, user.CreatedAt)
}
