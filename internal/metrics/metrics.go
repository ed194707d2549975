package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersUpdatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_updated_total",
		Help: "Total number of order updates by kind",
	}, []string{"kind"})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted",
	})

	UsersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_created_total",
		Help: "Total number of users created",
	})

	UsersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_deleted_total",
		Help: "Total number of users deleted",
	})

	UserCreateRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "user_create_retries_total",
		Help: "Total number of retried user creation attempts",
	})

	BackupImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backup_imports_total",
		Help: "Total number of backup imports by result",
	}, []string{"result"})

	BackupExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backup_exports_total",
		Help: "Total number of backup exports",
	})

	InvoicesRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_rendered_total",
		Help: "Total number of invoices rendered by language",
	}, []string{"lang"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// Middleware records request count and latency labelled by the matched chi
// route pattern, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		statusLabel := strconv.Itoa(status)

		HTTPRequestDuration.WithLabelValues(r.Method, path, statusLabel).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, path, statusLabel).Inc()
	})
}
