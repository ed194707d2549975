package user

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/config"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user/controller"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user/repository"
	"github.com/KareemMohsenAli/kitchenProducts/internal/user/service"
)

type Module struct {
	Repository *repository.SQLUserRepository
	Service    *service.UserService
	Controller *controller.UserController
}

func NewModule(db *sqlx.DB, cfg config.OrderConfig, logger *zap.Logger) *Module {
	repo := repository.NewSQLUserRepository(db)
	svc := service.NewUserService(repo, logger, cfg.UserCreateAttempts, cfg.UserCreateDelay)
	return &Module{
		Repository: repo,
		Service:    svc,
		Controller: controller.NewUserController(svc, logger),
	}
}
