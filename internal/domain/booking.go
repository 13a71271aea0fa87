package domain

import (
	"time"

	"github.com/m04kA/barber-booking/pkg/types"
)

// Booking represents a barbershop reservation stored in the system
type Booking struct {
	ID              int64
	ShopID          int64
	BarberID        int64 // ресурс, на который действует ограничение пересечения
	ServiceID       int64
	ClientName      string
	ClientPhone     *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking can be moved to cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// EndTime returns the local end time of the booking
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StartsAt returns the absolute start moment in the location of BookingDate
func (b *Booking) StartsAt() time.Time {
	return b.StartTime.OnDate(b.BookingDate)
}

// EndsAt returns the absolute end moment in the location of BookingDate
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt().Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingsFilter фильтр для выборки бронирований мастера
type BookingsFilter struct {
	ShopID          int64              // Обязательный параметр
	BarberID        *int64             // Фильтр по мастеру (опционально, если nil - все мастера)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые, отменённые и no-show
}

// IsSingleDay returns true if the filter targets exactly one date
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
