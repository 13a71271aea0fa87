package get_day_capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
)

// UseCase use case оценки вместимости дня мастера
type UseCase struct {
	bookingRepo  BookingRepository
	rules        RulesResolver
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rules RulesResolver,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		rules:        rules,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute считает самый большой свободный промежуток дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayCapacity: shop=%d, barber=%d, duration=%d, date=%s",
		req.ShopID, req.BarberID, req.DurationMinutes, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayCapacity: validation failed: %v", err)
		return nil, err
	}

	day, err := availability.ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetDayCapacity: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	// 2. Получаем текущее время в зоне барбершопа
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем действующие правила
	rules, err := uc.rules.Resolve(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("GetDayCapacity: failed to resolve rules for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to resolve rules: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования мастера (в нерабочий день не нужны)
	var bookings []*domain.Booking
	if rules.IsWorkingDay(day) {
		bookings, err = uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
			ShopID:    req.ShopID,
			BarberID:  &req.BarberID,
			StartDate: &day,
			EndDate:   &day,
		})
		if err != nil {
			uc.logger.Error("GetDayCapacity: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
	}

	// 5. Считаем вместимость
	date := day.Format(domain.DateFormat)
	capacity := availability.ComputeDayCapacity(date, availability.RecordsFromBookings(bookings), req.DurationMinutes, rules, now)
	uc.metrics.IncAvailabilityComputation("capacity")

	uc.logger.Info("GetDayCapacity: max gap %d min (required %d) for shop=%d, barber=%d, date=%s",
		capacity.MaxGapMinutes, capacity.RequiredMinutes, req.ShopID, req.BarberID, date)

	return &Response{
		Date:            date,
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		MaxGapMinutes:   capacity.MaxGapMinutes,
		RequiredMinutes: capacity.RequiredMinutes,
		HasCapacity:     capacity.HasGap(),
	}, nil
}
