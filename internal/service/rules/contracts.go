package rules

import (
	"context"

	"github.com/m04kA/barber-booking/internal/domain"
)

// RulesRepository интерфейс репозитория правил барбершопа
type RulesRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.ShopRules, error)
	Upsert(ctx context.Context, rules *domain.ShopRules) (*domain.ShopRules, error)
	Delete(ctx context.Context, shopID int64) error
}

// RulesCache кэш переопределений правил. found=true и rules=nil означает "переопределений нет"
type RulesCache interface {
	Get(ctx context.Context, shopID int64) (rules *domain.ShopRules, found bool, err error)
	Set(ctx context.Context, shopID int64, rules *domain.ShopRules) error
	Invalidate(ctx context.Context, shopID int64) error
}

// Metrics счётчики обращений к кэшу правил
type Metrics interface {
	IncRulesCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
