package availability

import (
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/types"
)

// DayPlan полная оценка одного дня для одной услуги
type DayPlan struct {
	// Slots базовая сетка для календаря (окно = шаг сетки)
	Slots []Slot
	// StartTimes допустимые начала для услуги, включая начала "встык" к бронированиям
	StartTimes []string
	Capacity   DayCapacity
	WorkingDay bool
}

// PlanDay считает сетку, допустимые начала услуги и вместимость дня.
// В нерабочий день все списки пустые, а вместимость нулевая.
func PlanDay(day time.Time, intervals []Interval, requiredMinutes int, rules domain.BookingRules, now time.Time) DayPlan {
	required := rules.ServiceDuration(requiredMinutes)

	plan := DayPlan{
		Slots:      []Slot{},
		StartTimes: []string{},
		Capacity:   DayCapacity{RequiredMinutes: required},
		WorkingDay: rules.IsWorkingDay(day),
	}
	if !plan.WorkingDay {
		return plan
	}

	opts := OptionsFromRules(rules)
	plan.Slots = ApplySameDayRules(BuildSlots(intervals, opts), day, now, rules)

	opts.DurationMinutes = required
	serviceSlots := ApplySameDayRules(BuildSlots(intervals, opts), day, now, rules)

	starts := RebuildEdgeSlots(
		FilterAvailableTimes(serviceSlots),
		intervals,
		required,
		rules.IntervalMinutes,
		rules.WorkStartMinutes(),
		rules.WorkEndMinutes(),
	)
	plan.StartTimes = dropBefore(starts, EarliestStart(day, now, rules))

	plan.Capacity = ComputeCapacity(day, intervals, required, rules, now)

	return plan
}

// CanStartAt проверяет, входит ли start в допустимые начала плана
func (p DayPlan) CanStartAt(start types.TimeString) bool {
	value := start.String()
	for _, s := range p.StartTimes {
		if s == value {
			return true
		}
	}
	return false
}
