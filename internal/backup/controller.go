package backup

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
)

const maxImportBytes = 64 << 20

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleExport(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	snapshot, err := c.service.Export(r.Context())
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	filename := c.service.Filename(time.Now())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	respond.JSON(w, logger, http.StatusOK, snapshot)
}

func (c *Controller) HandleImport(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		logger.Warn("failed to read import body", zap.Error(err))
		respond.Error(w, logger, traceID, apperrors.NewImportFormatError("backup could not be read", err))
		return
	}

	result, err := c.service.Import(r.Context(), data)
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, result)
}
