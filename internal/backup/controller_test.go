package backup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
)

type mockService struct {
	ExportFunc func(ctx context.Context) (*Snapshot, error)
	ImportFunc func(ctx context.Context, data []byte) (*ImportResult, error)
}

func (m *mockService) Export(ctx context.Context) (*Snapshot, error) {
	return m.ExportFunc(ctx)
}

func (m *mockService) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	return m.ImportFunc(ctx, data)
}

func (m *mockService) Filename(now time.Time) string {
	return "backup.json"
}

func TestController_HandleExport(t *testing.T) {
	svc := &mockService{
		ExportFunc: func(ctx context.Context) (*Snapshot, error) {
			return &Snapshot{Users: []domain.User{{ID: 1, Name: "Ahmed"}}, Orders: []domain.Order{}}, nil
		},
	}
	ctrl := NewController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleExport(rec, httptest.NewRequest(http.MethodGet, "/backup/export", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="backup.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"users":[{"id":1,"name":"Ahmed"`)
	assert.Contains(t, rec.Body.String(), `"orders":[]`)
}

func TestController_HandleImport(t *testing.T) {
	var got string
	svc := &mockService{
		ImportFunc: func(ctx context.Context, data []byte) (*ImportResult, error) {
			got = string(data)
			return &ImportResult{Users: 0, Orders: 0}, nil
		},
	}
	ctrl := NewController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleImport(rec, httptest.NewRequest(http.MethodPost, "/backup/import", strings.NewReader(`{"users":[],"orders":[]}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"users":[],"orders":[]}`, got)
}

func TestController_HandleImport_InvalidFile(t *testing.T) {
	svc := &mockService{
		ImportFunc: func(ctx context.Context, data []byte) (*ImportResult, error) {
			return nil, apperrors.NewImportFormatError(`backup is missing "orders"`, nil)
		},
	}
	ctrl := NewController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleImport(rec, httptest.NewRequest(http.MethodPost, "/backup/import", strings.NewReader(`{"users":[]}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_IMPORT")
}
