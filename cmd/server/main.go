package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/backup"
	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/database"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/logger"
	"github.com/KareemMohsenAli/kitchenProducts/internal/infrastructure/tracing"
	"github.com/KareemMohsenAli/kitchenProducts/internal/invoice"
	"github.com/KareemMohsenAli/kitchenProducts/internal/order"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server"
	"github.com/KareemMohsenAli/kitchenProducts/internal/stats"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user"
)

func main() {
	configPath := pflag.String("config", os.Getenv("APP_CONFIG"), "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		zapLogger.Fatal("initializing tracing", zap.Error(err))
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	bundle, err := i18n.LoadBundle(cfg.I18n.DefaultLanguage)
	if err != nil {
		zapLogger.Fatal("loading translations", zap.Error(err))
	}

	users := user.NewModule(db, cfg.Order, zapLogger)
	orders := order.NewModule(db, users, zapLogger)
	_, backupCtrl := backup.NewModule(db, users.Repository, orders.Repository, zapLogger)
	_, statsCtrl := stats.NewModule(users.Repository, orders.Repository, bundle, zapLogger)

	router := server.NewRouter(server.Controllers{
		Orders:     orders.Controller,
		Users:      users.Controller,
		Invoices:   invoice.NewModule(orders.Repository, users.Repository, bundle, zapLogger),
		Backup:     backupCtrl,
		Statistics: statsCtrl,
	}, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		zapLogger.Error("tracing shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
