package stats

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
)

type StatisticsGetter interface {
	Get(ctx context.Context, lang string) (*Statistics, error)
}

type Controller struct {
	service StatisticsGetter
	logger  *zap.Logger
}

func NewController(service StatisticsGetter, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	result, err := c.service.Get(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, result)
}
