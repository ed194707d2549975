package order

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/order/controller"
	"github.com/KareemMohsenAli/kitchenProducts/internal/order/repository"
	"github.com/KareemMohsenAli/kitchenProducts/internal/order/usecase"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user"
)

type Module struct {
	Repository *repository.SQLOrderRepository
	UseCase    *usecase.OrderUseCase
	Controller *controller.OrderController
}

func NewModule(db *sqlx.DB, users *user.Module, logger *zap.Logger) *Module {
	repo := repository.NewSQLOrderRepository(db)
	uc := usecase.NewOrderUseCase(repo, users.Repository, users.Service, logger)
	return &Module{
		Repository: repo,
		UseCase:    uc,
		Controller: controller.NewOrderController(uc, logger),
	}
}
