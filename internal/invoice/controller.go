package invoice

import (
	"bytes"
	"context"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
)

type Builder interface {
	Build(ctx context.Context, orderID int64, selected []int, lang string) (*Invoice, error)
}

type Controller struct {
	builder Builder
	logger  *zap.Logger
}

func NewController(builder Builder, logger *zap.Logger) *Controller {
	return &Controller{
		builder: builder,
		logger:  logger,
	}
}

func (c *Controller) HandleInvoice(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}
	logger = logger.With(zap.Int64("orderId", orderID))

	selected, err := ParseSelection(r.URL.Query().Get("items"))
	if err != nil {
		respond.ValidationError(w, logger, traceID, "invalid items", apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must be a comma-separated list of item indexes",
		})
		return
	}

	inv, err := c.builder.Build(r.Context(), orderID, selected, r.URL.Query().Get("lang"))
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, inv); err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to write invoice", zap.Error(err))
	}
}
