package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Order    OrderConfig
	I18n     I18nConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type OrderConfig struct {
	UserCreateAttempts int
	UserCreateDelay    time.Duration
}

type I18nConfig struct {
	DefaultLanguage string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

// Load reads configuration from defaults, then the YAML file at path (when
// path is not empty), then the environment. A .env file in the working
// directory is loaded into the environment first if it exists. Environment
// keys are the upper-cased config keys with dots replaced by underscores,
// e.g. DATABASE_PATH or ORDER_USERCREATEATTEMPTS.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			Path:            v.GetString("database.path"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			MaxOpenConns:    v.GetInt("database.maxOpenConns"),
			MaxIdleConns:    v.GetInt("database.maxIdleConns"),
			ConnMaxLifetime: v.GetDuration("database.connMaxLifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Order: OrderConfig{
			UserCreateAttempts: v.GetInt("order.userCreateAttempts"),
			UserCreateDelay:    v.GetDuration("order.userCreateDelay"),
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("i18n.defaultLanguage"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			ServiceName: v.GetString("tracing.serviceName"),
			Endpoint:    v.GetString("tracing.endpoint"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/orders.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "orders")
	v.SetDefault("database.password", "secret")
	v.SetDefault("database.name", "aluminum_orders")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("order.userCreateAttempts", 3)
	v.SetDefault("order.userCreateDelay", "100ms")
	v.SetDefault("i18n.defaultLanguage", "ar")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "aluminum-orders")
	v.SetDefault("tracing.endpoint", "http://localhost:14268/api/traces")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Order.UserCreateAttempts < 1 {
		return errors.New("order.userCreateAttempts must be at least 1")
	}
	if c.Order.UserCreateDelay < 0 {
		return errors.New("order.userCreateDelay must not be negative")
	}
	return nil
}
