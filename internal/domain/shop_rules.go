package domain

import "time"

// ShopRules per-shop override of the process-wide BookingRules.
// Nil fields inherit the base value.
type ShopRules struct {
	ID                            int64
	ShopID                        int64
	WorkingDays                   *Weekdays
	StartHour                     *int
	EndHour                       *int
	IntervalMinutes               *int
	SameDayCutoffHour             *int
	SameDayMinAdvanceMinutes      *int
	DefaultServiceDurationMinutes *int
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

// Apply returns a new BookingRules with the overrides applied on top of base
func (s *ShopRules) Apply(base BookingRules) BookingRules {
	if s == nil {
		return base
	}

	rules := base
	if s.WorkingDays != nil {
		rules = rules.WithWorkingDays(*s.WorkingDays)
	}
	if s.StartHour != nil || s.EndHour != nil {
		start, end := rules.StartHour, rules.EndHour
		if s.StartHour != nil {
			start = *s.StartHour
		}
		if s.EndHour != nil {
			end = *s.EndHour
		}
		rules = rules.WithHours(start, end)
	}
	if s.IntervalMinutes != nil {
		rules = rules.WithInterval(*s.IntervalMinutes)
	}
	if s.SameDayCutoffHour != nil || s.SameDayMinAdvanceMinutes != nil {
		cutoff, advance := rules.SameDayCutoffHour, rules.SameDayMinAdvanceMinutes
		if s.SameDayCutoffHour != nil {
			cutoff = *s.SameDayCutoffHour
		}
		if s.SameDayMinAdvanceMinutes != nil {
			advance = *s.SameDayMinAdvanceMinutes
		}
		rules = rules.WithSameDay(cutoff, advance)
	}
	if s.DefaultServiceDurationMinutes != nil {
		rules = rules.WithDefaultServiceDuration(*s.DefaultServiceDurationMinutes)
	}
	return rules
}
