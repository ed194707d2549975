// Command ordersctl runs backup and statistics jobs against the order store
// without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/backup"
	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/logger"
	"github.com/KareemMohsenAli/kitchenProducts/internal/order"
	"github.com/KareemMohsenAli/kitchenProducts/internal/stats"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user"
)

const usage = `usage: ordersctl <command> [flags]

commands:
  export [--out file]      write a backup of every user and order
  import --file file       replace the store with a backup file
  stats [--lang ar|en]     print order statistics`

var errUsage = errors.New(usage)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	configPath := flags.String("config", os.Getenv("APP_CONFIG"), "path to the YAML config file")

	var action func(*app) error
	switch command {
	case "export":
		outPath := flags.String("out", "", "backup file to write (default: dated name in the working directory)")
		action = func(a *app) error { return a.export(ctx, *outPath, out) }
	case "import":
		filePath := flags.String("file", "", "backup file to read")
		action = func(a *app) error { return a.importFile(ctx, *filePath, out) }
	case "stats":
		lang := flags.String("lang", "", "label language, ar or en")
		action = func(a *app) error { return a.printStats(ctx, *lang, out) }
	default:
		return errUsage
	}
	if err := flags.Parse(rest); err != nil {
		return err
	}

	a, err := newApp(ctx, *configPath)
	if err != nil {
		return err
	}
	defer a.close()

	return action(a)
}

type app struct {
	db         *sqlx.DB
	logger     *zap.Logger
	backup     backup.Service
	statistics *stats.Service
	now        func() time.Time
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	bundle, err := i18n.LoadBundle(cfg.I18n.DefaultLanguage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	users := user.NewModule(db, cfg.Order, zapLogger)
	orders := order.NewModule(db, users, zapLogger)
	backupSvc, _ := backup.NewModule(db, users.Repository, orders.Repository, zapLogger)
	statsSvc, _ := stats.NewModule(users.Repository, orders.Repository, bundle, zapLogger)

	return &app{
		db:         db,
		logger:     zapLogger,
		backup:     backupSvc,
		statistics: statsSvc,
		now:        time.Now,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) export(ctx context.Context, path string, out io.Writer) error {
	snapshot, err := a.backup.Export(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		path = a.backup.Filename(a.now())
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	fmt.Fprintf(out, "exported %d users and %d orders to %s\n", len(snapshot.Users), len(snapshot.Orders), path)
	return nil
}

func (a *app) importFile(ctx context.Context, path string, out io.Writer) error {
	if path == "" {
		return errors.New("import: --file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	result, err := a.backup.Import(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d users and %d orders", result.Users, result.Orders)
	if result.LegacyOrders > 0 {
		fmt.Fprintf(out, " (%d legacy orders recomputed)", result.LegacyOrders)
	}
	fmt.Fprintln(out)
	return nil
}

func (a *app) printStats(ctx context.Context, lang string, out io.Writer) error {
	result, err := a.statistics.Get(ctx, lang)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "orders:        %d\n", result.OrdersCount)
	fmt.Fprintf(out, "users:         %d\n", result.UsersCount)
	fmt.Fprintf(out, "total amount:  %s\n", money(result.TotalAmount))
	fmt.Fprintf(out, "average order: %s\n", money(result.AverageOrderValue))
	fmt.Fprintf(out, "data size:     %s\n", result.EstimatedSizeLabel)
	if len(result.TopCustomers) > 0 {
		fmt.Fprintln(out, "top customers:")
		for i, c := range result.TopCustomers {
			fmt.Fprintf(out, "  %2d. %s  %s\n", i+1, c.Name, money(c.Total))
		}
	}
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
