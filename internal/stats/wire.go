package stats

import (
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
)

func NewModule(users UserLister, orders OrderLister, bundle *i18n.Bundle, logger *zap.Logger) (*Service, *Controller) {
	svc := NewService(users, orders, bundle, logger)
	return svc, NewController(svc, logger)
}
