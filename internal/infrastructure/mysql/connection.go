package mysql

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
)

func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mcfg := mysql.NewConfig()
	mcfg.User = cfg.User
	mcfg.Passwd = cfg.Password
	mcfg.Net = "tcp"
	mcfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mcfg.DBName = cfg.Name
	mcfg.Params = map[string]string{"charset": "utf8mb4"}
	// report matched rows so an update that changes nothing is not taken
	// for a missing row
	mcfg.ClientFoundRows = true

	db, err := sqlx.Open("mysql", mcfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// IsTransientError reports a deadlock (1213) or lock wait timeout (1205).
func IsTransientError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
