package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
	catalogClient "github.com/m04kA/barber-booking/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов мастера
type UseCase struct {
	bookingRepo  BookingRepository
	rules        RulesResolver
	catalog      CatalogClient
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// catalog может быть nil, тогда длительность берётся из запроса или правил
func NewUseCase(
	bookingRepo BookingRepository,
	rules RulesResolver,
	catalog CatalogClient,
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
		catalog:      catalog,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, barber=%d, service=%v, duration=%d, date=%s",
		req.ShopID, req.BarberID, req.ServiceID, req.DurationMinutes, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day, err := availability.ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	// 2. Получаем текущее время в зоне барбершопа
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем действующие правила
	rules, err := uc.rules.Resolve(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve rules for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to resolve rules: %v", ErrInternal, err)
	}

	// 4. Определяем длительность услуги
	duration, degraded, err := uc.resolveDuration(ctx, req, rules)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            day.Format(domain.DateFormat),
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Degraded:        degraded,
	}

	// 5. Нерабочий день: бронирования не читаем
	if !rules.IsWorkingDay(day) {
		uc.logger.Info("GetAvailableSlots: shop=%d is closed on %s", req.ShopID, response.Date)
		plan := availability.PlanDay(day, nil, duration, rules, now)
		fillPlan(response, plan)
		return response, nil
	}

	// 6. Получаем активные бронирования мастера на дату
	filter := domain.BookingsFilter{
		ShopID:    req.ShopID,
		BarberID:  &req.BarberID,
		StartDate: &day,
		EndDate:   &day,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Считаем сетку, допустимые начала и вместимость
	intervals := availability.NormalizeBookings(
		availability.RecordsFromBookings(bookings), day, rules.DefaultServiceDurationMinutes,
	)
	plan := availability.PlanDay(day, intervals, duration, rules, now)
	fillPlan(response, plan)
	uc.metrics.IncAvailabilityComputation("slots")

	uc.logger.Info("GetAvailableSlots: %d bookings, %d start times, max gap %d min for shop=%d, barber=%d, date=%s",
		len(intervals), len(plan.StartTimes), plan.Capacity.MaxGapMinutes, req.ShopID, req.BarberID, response.Date)

	return response, nil
}

// resolveDuration определяет длительность услуги: каталог, затем запрос, затем правила
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, rules domain.BookingRules) (int, bool, error) {
	if req.ServiceID == nil || uc.catalog == nil {
		return rules.ServiceDuration(req.DurationMinutes), false, nil
	}

	service, err := uc.catalog.GetServiceWithGracefulDegradation(ctx, req.ShopID, *req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in shop=%d", *req.ServiceID, req.ShopID)
			return 0, false, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceDegraded):
			uc.logger.Warn("GetAvailableSlots: catalog degraded, using fallback duration for service id=%d", *req.ServiceID)
			return rules.ServiceDuration(req.DurationMinutes), true, nil
		default:
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return 0, false, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	if !service.OfferedBy(req.BarberID) {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not offered by barber=%d", service.ID, req.BarberID)
		return 0, false, ErrServiceNotOffered
	}

	return rules.ServiceDuration(service.DurationMinutes), false, nil
}

func fillPlan(response *Response, plan availability.DayPlan) {
	response.WorkingDay = plan.WorkingDay
	response.Slots = plan.Slots
	response.StartTimes = plan.StartTimes
	response.Capacity = plan.Capacity
}
