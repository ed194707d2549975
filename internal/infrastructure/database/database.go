// Package database opens the configured store and brings its schema up to
// date.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/migrate"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/mysql"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/sqlite"
)

func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = sqlite.NewConnection(cfg)
	case config.DriverMySQL:
		db, err = mysql.NewConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := migrate.Apply(ctx, db.DB, cfg.Driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// IsTransientError reports whether err is a lock or deadlock failure from
// either driver that is worth retrying.
func IsTransientError(err error) bool {
	return sqlite.IsBusyError(err) || mysql.IsTransientError(err)
}

// ToMillis converts t to the unix-millisecond form timestamps are stored in.
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
