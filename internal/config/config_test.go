package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/orders.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Order.UserCreateAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Order.UserCreateDelay)
	assert.Equal(t, "ar", cfg.I18n.DefaultLanguage)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
database:
  path: /tmp/shop.db
i18n:
  defaultLanguage: en
order:
  userCreateDelay: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/shop.db", cfg.Database.Path)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, 250*time.Millisecond, cfg.Order.UserCreateDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsZeroAttempts(t *testing.T) {
	t.Setenv("ORDER_USERCREATEATTEMPTS", "0")

	_, err := Load("")
	assert.Error(t, err)
}
