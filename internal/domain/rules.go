package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRules возвращается, если правила бронирования не проходят валидацию
var ErrInvalidRules = errors.New("domain: invalid booking rules")

// Weekdays is an immutable set of weekdays (bit i = time.Weekday(i), 0=Sunday)
type Weekdays uint8

// DefaultWorkingDays Monday..Saturday
var DefaultWorkingDays = NewWeekdays(
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
)

// NewWeekdays builds a set from the given days, ignoring values outside 0..6
func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			continue
		}
		w |= 1 << uint(d)
	}
	return w
}

// Has reports whether the day is in the set
func (w Weekdays) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return w&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set has no days
func (w Weekdays) IsEmpty() bool {
	return w&0x7f == 0
}

// Days returns the days in ascending order (Sunday first)
func (w Weekdays) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Ints returns weekday numbers 0..6 in ascending order
func (w Weekdays) Ints() []int {
	days := w.Days()
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func (w Weekdays) String() string {
	days := w.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// BookingRules static business policy for a shop.
// The value is never mutated after load: every With* method returns a modified copy.
type BookingRules struct {
	WorkingDays                   Weekdays
	StartHour                     int
	EndHour                       int
	IntervalMinutes               int
	SameDayCutoffHour             int
	SameDayMinAdvanceMinutes      int
	DefaultServiceDurationMinutes int
}

// DefaultBookingRules возвращает правила по умолчанию (пн-сб, 9-18, шаг 30 минут)
func DefaultBookingRules() BookingRules {
	return BookingRules{
		WorkingDays:                   DefaultWorkingDays,
		StartHour:                     DefaultStartHour,
		EndHour:                       DefaultEndHour,
		IntervalMinutes:               DefaultIntervalMinutes,
		SameDayCutoffHour:             DefaultSameDayCutoffHour,
		SameDayMinAdvanceMinutes:      DefaultSameDayMinAdvanceMinutes,
		DefaultServiceDurationMinutes: DefaultServiceDurationMinutes,
	}
}

// WithWorkingDays returns a copy with the given working days. An empty set keeps the current days.
func (r BookingRules) WithWorkingDays(days Weekdays) BookingRules {
	if !days.IsEmpty() {
		r.WorkingDays = days
	}
	return r
}

// WithHours returns a copy with new business hours
func (r BookingRules) WithHours(startHour, endHour int) BookingRules {
	r.StartHour = startHour
	r.EndHour = endHour
	return r
}

// WithInterval returns a copy with a new grid interval
func (r BookingRules) WithInterval(minutes int) BookingRules {
	r.IntervalMinutes = minutes
	return r
}

// WithSameDay returns a copy with new same-day cutoff and advance notice
func (r BookingRules) WithSameDay(cutoffHour, minAdvanceMinutes int) BookingRules {
	r.SameDayCutoffHour = cutoffHour
	r.SameDayMinAdvanceMinutes = minAdvanceMinutes
	return r
}

// WithDefaultServiceDuration returns a copy with a new default service duration
func (r BookingRules) WithDefaultServiceDuration(minutes int) BookingRules {
	r.DefaultServiceDurationMinutes = minutes
	return r
}

// IsWorkingDay reports whether the date falls on a working weekday
func (r BookingRules) IsWorkingDay(date time.Time) bool {
	return r.WorkingDays.Has(date.Weekday())
}

// WorkStartMinutes начало рабочего дня в минутах от полуночи
func (r BookingRules) WorkStartMinutes() int {
	return r.StartHour * 60
}

// WorkEndMinutes конец рабочего дня в минутах от полуночи
func (r BookingRules) WorkEndMinutes() int {
	return r.EndHour * 60
}

// ServiceDuration возвращает длительность услуги, подставляя значение по умолчанию для непозитивных значений
func (r BookingRules) ServiceDuration(minutes int) int {
	if minutes > 0 {
		return minutes
	}
	return r.DefaultServiceDurationMinutes
}

// Validate проверяет согласованность правил
func (r BookingRules) Validate() error {
	if r.WorkingDays.IsEmpty() {
		return fmt.Errorf("%w: working days must not be empty", ErrInvalidRules)
	}
	if r.StartHour < 0 || r.StartHour > 23 {
		return fmt.Errorf("%w: startHour must be between 0 and 23", ErrInvalidRules)
	}
	if r.EndHour <= r.StartHour || r.EndHour > 24 {
		return fmt.Errorf("%w: endHour must be after startHour and not later than 24", ErrInvalidRules)
	}
	if r.IntervalMinutes < MinIntervalMinutes || r.IntervalMinutes > MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidRules, MinIntervalMinutes, MaxIntervalMinutes)
	}
	if r.SameDayCutoffHour < 0 || r.SameDayCutoffHour > 24 {
		return fmt.Errorf("%w: sameDayCutoffHour must be between 0 and 24", ErrInvalidRules)
	}
	if r.SameDayMinAdvanceMinutes < 0 || r.SameDayMinAdvanceMinutes > MaxSameDayMinAdvanceMinutes {
		return fmt.Errorf("%w: sameDayMinAdvanceMinutes must be between 0 and %d",
			ErrInvalidRules, MaxSameDayMinAdvanceMinutes)
	}
	if r.DefaultServiceDurationMinutes < MinServiceDurationMinutes ||
		r.DefaultServiceDurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: defaultServiceDurationMinutes must be between %d and %d",
			ErrInvalidRules, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	return nil
}
