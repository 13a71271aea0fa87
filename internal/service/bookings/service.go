package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/barber-booking/internal/domain"
	bookingRepo "github.com/m04kA/barber-booking/internal/infra/storage/booking"
	"github.com/m04kA/barber-booking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetShopBookings получает бронирования барбершопа с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: GetShopBookings(ctx, &GetShopBookingsRequest{ShopID: 123})
// - Бронирования конкретного мастера: указать BarberID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetShopBookings: fetching bookings for shop=%d", req.ShopID)
	if req.BarberID != nil {
		logMsg += fmt.Sprintf(", barber=%d", *req.BarberID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetShopBookings: endDate before startDate for shop=%d", req.ShopID)
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%d", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов
// Смена статуса выполняется как compare-and-set относительно прочитанного статуса
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, target status=%s", id, req.Status)

	to, err := domain.ParseReservationStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Отмена идёт через Cancel, чтобы сохранить причину и время отмены
	if to == domain.StatusCancelled {
		return s.Cancel(ctx, id, &models.CancelBookingRequest{})
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if err := domain.AssertTransition(from, to); err != nil {
		s.logger.Warn("UpdateStatus: rejected transition %s -> %s for booking id=%d", from, to, id)
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, s.mapWriteError("UpdateStatus", id, err)
	}

	s.metrics.IncStatusTransition(string(from), string(to))
	booking.Status = to

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, from, to)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Отмена допустима из pending, confirmed и in_progress
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	var reason *string
	if req != nil && req.CancellationReason != nil {
		trimmed := strings.TrimSpace(*req.CancellationReason)
		if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
			s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", id)
			return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if err := domain.AssertTransition(from, domain.StatusCancelled); err != nil {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled from status=%s", id, from)
		return nil, err
	}

	if err := s.bookingRepo.Cancel(ctx, id, from, reason); err != nil {
		return nil, s.mapWriteError("Cancel", id, err)
	}

	s.metrics.IncStatusTransition(string(from), string(domain.StatusCancelled))

	// Перечитываем, чтобы вернуть cancelledAt из БД
	updated, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled (was %s)", id, from)
	return models.FromDomainBooking(updated), nil
}

// getBooking загружает бронирование и переводит ошибки репозитория в ошибки сервиса
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d disappeared before update", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, id)
		return ErrConcurrentUpdate
	default:
		s.logger.Error("%s: failed to update booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
