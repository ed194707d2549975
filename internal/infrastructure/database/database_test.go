package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
)

func TestOpen_SQLiteAppliesMigrations(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nested", "orders.db"),
	}

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('Users', 'Orders') ORDER BY name`))
	assert.Equal(t, []string{"Orders", "Users"}, tables)

	var applied int
	require.NoError(t, db.Get(&applied, `SELECT COUNT(*) FROM schema_migrations`))
	assert.Equal(t, 1, applied)
}

func TestOpen_SQLiteIsIdempotent(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "orders.db"),
	}

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.Get(&applied, `SELECT COUNT(*) FROM schema_migrations`))
	assert.Equal(t, 1, applied)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestIsTransientError(t *testing.T) {
	assert.True(t, IsTransientError(fmt.Errorf("insert: %w", &gomysql.MySQLError{Number: 1213})))
	assert.True(t, IsTransientError(&gomysql.MySQLError{Number: 1205}))
	assert.False(t, IsTransientError(&gomysql.MySQLError{Number: 1062}))
	assert.False(t, IsTransientError(errors.New("boom")))
}

func TestMillisRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 30, 15, 123_456_789, time.FixedZone("EET", 2*3600))

	ms := ToMillis(ts)
	back := FromMillis(ms)

	assert.Equal(t, ts.UnixMilli(), ms)
	assert.True(t, back.Equal(ts.Truncate(time.Millisecond)))
	assert.Equal(t, time.UTC, back.Location())
}
