package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/domain"
	"github.com/KareemMohsenAli/kitchenProducts/internal/server/respond"
)

type UserService interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
	Delete(ctx context.Context, id int64) error
}

type UserController struct {
	service UserService
	logger  *zap.Logger
}

func NewUserController(service UserService, logger *zap.Logger) *UserController {
	return &UserController{
		service: service,
		logger:  logger,
	}
}

type listUsersResponse struct {
	Users []domain.UserSummary `json:"users"`
	Count int                  `json:"count"`
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	users, err := c.service.List(r.Context())
	if err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	respond.JSON(w, logger, http.StatusOK, listUsersResponse{Users: users, Count: len(users)})
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := respond.Trace(w, c.logger)

	userID, verr := respond.IDParam(r, "userId")
	if verr != nil {
		logger.Warn("invalid userId in path")
		respond.Error(w, logger, traceID, verr)
		return
	}
	logger = logger.With(zap.Int64("userId", userID))

	if err := c.service.Delete(r.Context(), userID); err != nil {
		respond.Error(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
