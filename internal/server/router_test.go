package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/backup"
	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
	"github.com/KareemMohsenAli/kitchenProducts/internal/invoice"
	"github.com/KareemMohsenAli/kitchenProducts/internal/order"
	"github.com/KareemMohsenAli/kitchenProducts/internal/stats"
	"github.com/KareemMohsenAli/kitchenProducts/internal/testutil"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	bundle, err := i18n.LoadBundle(i18n.Arabic)
	require.NoError(t, err)

	users := user.NewModule(db, config.OrderConfig{UserCreateAttempts: 1}, logger)
	orders := order.NewModule(db, users, logger)
	_, backupCtrl := backup.NewModule(db, users.Repository, orders.Repository, logger)
	_, statsCtrl := stats.NewModule(users.Repository, orders.Repository, bundle, logger)

	return NewRouter(Controllers{
		Orders:     orders.Controller,
		Users:      users.Controller,
		Invoices:   invoice.NewModule(orders.Repository, users.Repository, bundle, logger),
		Backup:     backupCtrl,
		Statistics: statsCtrl,
	}, db, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const createBody = `{
	"customerName": "  Ahmed  ",
	"address": "Cairo",
	"items": [
		{"width": "2", "length": "1.5", "quantity": "2", "pricePerMeter": "100", "category": "windows"},
		{"width": 1, "length": 1, "quantity": 1, "pricePerMeter": 50, "category": ""}
	],
	"advancePayments": [{"amount": "200", "date": "2025-01-10"}]
}`

func TestRouter_OrderLifecycle(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/orders", createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))

	var created struct {
		ID                   int64   `json:"id"`
		UserID               int64   `json:"userId"`
		CustomerName         string  `json:"customerName"`
		TotalAmount          float64 `json:"totalAmount"`
		TotalAdvancePayments float64 `json:"totalAdvancePayments"`
		RemainingAmount      float64 `json:"remainingAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Ahmed", created.CustomerName)
	assert.Equal(t, 650.0, created.TotalAmount)
	assert.Equal(t, 200.0, created.TotalAdvancePayments)
	assert.Equal(t, 450.0, created.RemainingAmount)

	rec = do(t, h, http.MethodGet, "/api/v1/orders?q=ahm", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Orders  []json.RawMessage `json:"orders"`
		Summary struct {
			Count       int     `json:"count"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Orders, 1)
	assert.Equal(t, 1, list.Summary.Count)
	assert.Equal(t, 650.0, list.Summary.TotalAmount)

	orderPath := "/api/v1/orders/" + itoa(created.ID)

	rec = do(t, h, http.MethodPatch, orderPath+"/items/0/status", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"done"`)

	rec = do(t, h, http.MethodPut, orderPath+"/payments", `{"advancePayments":[{"amount":"700"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"remainingAmount":-50`)
	assert.Contains(t, rec.Body.String(), `"overpaid":true`)

	rec = do(t, h, http.MethodGet, orderPath+"/invoice?items=1&lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ahmed")
	assert.Contains(t, rec.Body.String(), "50.00 EGP")

	rec = do(t, h, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orderCount":1`)

	rec = do(t, h, http.MethodDelete, "/api/v1/users/"+itoa(created.UserID), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodDelete, orderPath, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, orderPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/users/"+itoa(created.UserID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ValidationError(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/orders", `{"customerName":" ","items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRouter_BackupAndStatistics(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/orders", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/backup/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "eslam-aluminum-orders-backup-")
	snapshot := rec.Body.String()

	rec = do(t, h, http.MethodPost, "/api/v1/backup/import", snapshot)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/backup/import", `{"users": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/statistics?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st struct {
		Language    string  `json:"language"`
		OrdersCount int     `json:"ordersCount"`
		UsersCount  int     `json:"usersCount"`
		TotalAmount float64 `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "en", st.Language)
	assert.Equal(t, 1, st.OrdersCount)
	assert.Equal(t, 1, st.UsersCount)
	assert.Equal(t, 650.0, st.TotalAmount)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}

func TestHealthHandler_Unavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(stubPinger{err: stderrors.New("down")}, zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
