package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
	bookingRepo "github.com/m04kA/barber-booking/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/barber-booking/internal/integrations/catalogservice"
	"github.com/m04kA/barber-booking/pkg/txmanager"
)

// Результаты для метрики созданных бронирований
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	rules        RulesResolver
	catalog      CatalogClient
	txManager    TransactionManager
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
	txManager TransactionManager,
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
		txManager:    txManager,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// пересечения, прошедшие мимо проверки, отсекает exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: shop=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ShopID, req.BarberID, req.ServiceID, req.Date, req.StartTime)

	result, err := uc.execute(ctx, req)
	uc.metrics.IncBookingCreated(resultFor(err))
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	day, err := availability.ParseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidDate)
	}

	// 2. Получаем текущее время в зоне барбершопа
	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(day, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// 3. Получаем услугу из каталога (название, цена, длительность)
	service, err := uc.getService(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем действующие правила
		rules, err := uc.rules.Resolve(txCtx, req.ShopID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve rules for shop=%d: %v", req.ShopID, err)
			return fmt.Errorf("%w: failed to resolve rules: %w", ErrInternal, err)
		}

		// 4.2. Проверяем рабочий день
		if !rules.IsWorkingDay(day) {
			uc.logger.Warn("CreateBooking: shop=%d is closed on %s", req.ShopID, req.Date)
			return ErrShopClosed
		}

		duration := rules.ServiceDuration(req.DurationMinutes)
		if service != nil {
			duration = rules.ServiceDuration(service.DurationMinutes)
		}

		// 4.3. Получаем активные бронирования мастера на дату с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			ShopID:    req.ShopID,
			BarberID:  &req.BarberID,
			StartDate: &day,
			EndDate:   &day,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.4. Проверяем, что время входит в допустимые начала (включая начала встык)
		intervals := availability.NormalizeBookings(
			availability.RecordsFromBookings(bookings), day, rules.DefaultServiceDurationMinutes,
		)
		plan := availability.PlanDay(day, intervals, duration, rules, now)
		if !plan.CanStartAt(req.StartTime) {
			uc.logger.Warn("CreateBooking: start %s for %d min is not available for barber=%d on %s (%d candidates)",
				req.StartTime, duration, req.BarberID, req.Date, len(plan.StartTimes))
			return ErrSlotNotAvailable
		}

		// 4.5. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ShopID:          req.ShopID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			ClientName:      strings.TrimSpace(req.ClientName),
			ClientPhone:     req.ClientPhone,
			BookingDate:     day,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}
		if service != nil {
			booking.ServiceName = service.Name
			booking.ServicePrice = service.Price
		}

		// 4.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: overlap rejected by database for barber=%d at %s %s",
					req.BarberID, req.Date, req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: concurrent bookings for barber=%d on %s, giving up: %v", req.BarberID, req.Date, err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return toResponse(result), nil
}

// getService получает услугу из каталога. nil без ошибки - каталог не подключен
func (uc *UseCase) getService(ctx context.Context, req *Request) (*catalogClient.Service, error) {
	if uc.catalog == nil {
		return nil, nil
	}

	service, err := uc.catalog.GetServiceWithGracefulDegradation(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("CreateBooking: service id=%d not found in shop=%d", req.ServiceID, req.ShopID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceDegraded):
			// Без каталога не знаем название и цену, бронирование не создаём
			uc.logger.Error("CreateBooking: catalog unavailable for service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		default:
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	if !service.OfferedBy(req.BarberID) {
		uc.logger.Warn("CreateBooking: service id=%d is not offered by barber=%d", req.ServiceID, req.BarberID)
		return nil, ErrServiceNotOffered
	}

	return service, nil
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		ShopID:          b.ShopID,
		BarberID:        b.BarberID,
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end
	}
	return resp
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return resultCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return resultConflict
	case errors.Is(err, ErrInternal), errors.Is(err, ErrCatalogUnavailable):
		return resultError
	default:
		return resultRejected
	}
}
