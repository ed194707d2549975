package backup

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func NewModule(db *sqlx.DB, users UserLister, orders OrderLister, logger *zap.Logger) (Service, *Controller) {
	repo := NewSQLRepository(db)
	svc := NewService(repo, users, orders, logger)
	return svc, NewController(svc, logger)
}
