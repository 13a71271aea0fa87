package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования барбершопа по фильтру (по умолчанию только активные)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// RulesResolver возвращает действующие правила барбершопа
type RulesResolver interface {
	Resolve(ctx context.Context, shopID int64) (domain.BookingRules, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetServiceWithGracefulDegradation(ctx context.Context, shopID, serviceID int64) (*catalogservice.Service, error)
}

// Metrics счётчики расчётов доступности
type Metrics interface {
	IncAvailabilityComputation(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
