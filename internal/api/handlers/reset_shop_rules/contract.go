package reset_shop_rules

import "context"

type RulesService interface {
	Reset(ctx context.Context, shopID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
