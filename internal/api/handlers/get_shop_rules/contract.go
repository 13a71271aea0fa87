package get_shop_rules

import (
	"context"

	"github.com/m04kA/barber-booking/internal/service/rules/models"
)

type RulesService interface {
	Get(ctx context.Context, shopID int64) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
