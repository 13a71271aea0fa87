package evaluate_availability

import (
	"time"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
)

// EvaluateRequest бронирования одного мастера на одну дату в любой из двух форм записи
type EvaluateRequest struct {
	Date            string                       `json:"date"` // "2025-01-15"
	Bookings        []availability.BookingRecord `json:"bookings"`
	DurationMinutes int                          `json:"durationMinutes,omitempty"` // 0 - длительность по умолчанию
	Rules           *RulesOverride               `json:"rules,omitempty"`
	Now             *time.Time                   `json:"now,omitempty"` // момент оценки, по умолчанию текущее время
}

// RulesOverride переопределения правил поверх правил сервиса
type RulesOverride struct {
	WorkingDays                   []string `json:"workingDays,omitempty"`
	StartHour                     *int     `json:"startHour,omitempty"`
	EndHour                       *int     `json:"endHour,omitempty"`
	IntervalMinutes               *int     `json:"intervalMinutes,omitempty"`
	SameDayCutoffHour             *int     `json:"sameDayCutoffHour,omitempty"`
	SameDayMinAdvanceMinutes      *int     `json:"sameDayMinAdvanceMinutes,omitempty"`
	DefaultServiceDurationMinutes *int     `json:"defaultServiceDurationMinutes,omitempty"`
}

// apply накладывает переопределения на base, nil возвращает base без изменений
func (o *RulesOverride) apply(base domain.BookingRules) domain.BookingRules {
	if o == nil {
		return base
	}

	override := &domain.ShopRules{
		StartHour:                     o.StartHour,
		EndHour:                       o.EndHour,
		IntervalMinutes:               o.IntervalMinutes,
		SameDayCutoffHour:             o.SameDayCutoffHour,
		SameDayMinAdvanceMinutes:      o.SameDayMinAdvanceMinutes,
		DefaultServiceDurationMinutes: o.DefaultServiceDurationMinutes,
	}
	if len(o.WorkingDays) > 0 {
		days := availability.ResolveWorkingDays(o.WorkingDays)
		override.WorkingDays = &days
	}
	return override.Apply(base)
}

// EvaluateResponse HTTP response model
type EvaluateResponse struct {
	Date            string              `json:"date"`
	WorkingDay      bool                `json:"workingDay"`
	DurationMinutes int                 `json:"durationMinutes"`
	Slots           []availability.Slot `json:"slots"`
	AvailableTimes  []string            `json:"availableTimes"`
	StartTimes      []string            `json:"startTimes"`
	MaxGapMinutes   int                 `json:"maxGap"`
	HasGap          bool                `json:"hasGap"`
}
