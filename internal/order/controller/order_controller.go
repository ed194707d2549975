package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/dto"
	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
)

type OrderUseCase interface {
	Create(ctx context.Context, req dto.OrderRequest) (*dto.OrderDetails, error)
	Get(ctx context.Context, id int64) (*dto.OrderDetails, error)
	List(ctx context.Context, query string) (*dto.OrderListResponse, error)
	Update(ctx context.Context, id int64, req dto.OrderRequest) (*dto.OrderDetails, error)
	ToggleItemStatus(ctx context.Context, id int64, index int) (*dto.OrderDetails, error)
	UpdatePayments(ctx context.Context, id int64, payments []domain.Payment) (*dto.OrderDetails, error)
	Delete(ctx context.Context, id int64) error
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	var req dto.OrderRequest
	if verr := respond.DecodeBody(r, &req); verr != nil {
		logger.Warn("invalid JSON body")
		respond.Error(w, logger, traceID, verr)
		return
	}

	order, err := c.useCase.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusCreated, order)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	resp, err := c.useCase.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, resp)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}

	order, err := c.useCase.Get(r.Context(), orderID)
	if err != nil {
		respond.Error(w, logger.With(zap.Int64("orderId", orderID)), traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, order)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}
	logger = logger.With(zap.Int64("orderId", orderID))

	var req dto.OrderRequest
	if verr := respond.DecodeBody(r, &req); verr != nil {
		logger.Warn("invalid JSON body")
		respond.Error(w, logger, traceID, verr)
		return
	}

	order, err := c.useCase.Update(r.Context(), orderID, req)
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, order)
}

func (c *OrderController) ToggleItemStatus(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}
	logger = logger.With(zap.Int64("orderId", orderID))

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respond.ValidationError(w, logger, traceID, "invalid index", apperrors.ValidationDetail{
			Field:   "index",
			Message: "index must be an integer",
		})
		return
	}

	order, err := c.useCase.ToggleItemStatus(r.Context(), orderID, index)
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, order)
}

func (c *OrderController) UpdatePayments(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}
	logger = logger.With(zap.Int64("orderId", orderID))

	var req dto.PaymentsRequest
	if verr := respond.DecodeBody(r, &req); verr != nil {
		logger.Warn("invalid JSON body")
		respond.Error(w, logger, traceID, verr)
		return
	}

	order, err := c.useCase.UpdatePayments(r.Context(), orderID, req.AdvancePayments)
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, order)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	orderID, verr := respond.IDParam(r, "orderId")
	if verr != nil {
		respond.Error(w, logger, traceID, verr)
		return
	}

	if err := c.useCase.Delete(r.Context(), orderID); err != nil {
		respond.Error(w, logger.With(zap.Int64("orderId", orderID)), traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
