package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
)

// SetupTestDB opens a migrated SQLite database in a per-test temp directory.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "orders_test.db"),
	}
	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return db
}
