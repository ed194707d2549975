package invoice

import (
	"go.uber.org/zap"

	"github.com/KareemMohsenAli/kitchenProducts/internal/i18n"
)

func NewModule(orders OrderFinder, users UserFinder, bundle *i18n.Bundle, logger *zap.Logger) *Controller {
	return NewController(NewService(orders, users, bundle, logger), logger)
}
