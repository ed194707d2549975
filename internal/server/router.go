package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	backupmodule "github.com/KareemMohsenAli/kitchenProducts/internal/backup"
	"github.com/KareemMohsenAli/kitchenProducts/internal/invoice"
	"github.com/KareemMohsenAli/kitchenProducts/internal/metrics"
	ordercontroller "github.com/KareemMohsenAli/kitchenProducts/internal/order/controller"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
	"github.com/KareemMohsenAli/kitchenProducts/internal/stats"
	usercontroller "github.com/KareemMohsenAli/kitchenProducts/internal/user/controller"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controllers struct {
	Orders     *ordercontroller.OrderController
	Users      *usercontroller.UserController
	Invoices   *invoice.Controller
	Backup     *backupmodule.Controller
	Statistics *stats.Controller
}

func NewRouter(c Controllers, db Pinger, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler(db, logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", c.Orders.Create)
			r.Get("/", c.Orders.List)
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", c.Orders.Get)
				r.Put("/", c.Orders.Update)
				r.Delete("/", c.Orders.Delete)
				r.Patch("/items/{index}/status", c.Orders.ToggleItemStatus)
				r.Put("/payments", c.Orders.UpdatePayments)
				r.Get("/invoice", c.Invoices.HandleInvoice)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", c.Users.List)
			r.Delete("/{userId}", c.Users.Delete)
		})

		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", c.Backup.HandleExport)
			r.Post("/import", c.Backup.HandleImport)
		})

		r.Get("/statistics", c.Statistics.HandleGet)
	})

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			respond.JSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
