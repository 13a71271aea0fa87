package availability

import (
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/types"
)

// Slot кандидат на бронирование
type Slot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// SlotOptions параметры сетки слотов на один день
type SlotOptions struct {
	StartHour       int
	EndHour         int
	IntervalMinutes int
	// DurationMinutes ширина проверяемого окна. 0 - совпадает с IntervalMinutes
	DurationMinutes int
	// DefaultDurationMinutes длительность записей без длительности. 0 - значение по умолчанию домена
	DefaultDurationMinutes int
	// Location зона, в которой интерпретируется дата. nil - UTC
	Location *time.Location
}

// DefaultSlotOptions 9:00-18:00 с шагом 30 минут
func DefaultSlotOptions() SlotOptions {
	return SlotOptions{
		StartHour:       domain.DefaultStartHour,
		EndHour:         domain.DefaultEndHour,
		IntervalMinutes: domain.DefaultIntervalMinutes,
	}
}

// OptionsFromRules строит параметры сетки из правил бронирования
func OptionsFromRules(rules domain.BookingRules) SlotOptions {
	return SlotOptions{
		StartHour:              rules.StartHour,
		EndHour:                rules.EndHour,
		IntervalMinutes:        rules.IntervalMinutes,
		DefaultDurationMinutes: rules.DefaultServiceDurationMinutes,
	}
}

func (o SlotOptions) withDefaults() SlotOptions {
	if o.StartHour == 0 && o.EndHour == 0 {
		o.StartHour = domain.DefaultStartHour
		o.EndHour = domain.DefaultEndHour
	}
	if o.IntervalMinutes <= 0 {
		o.IntervalMinutes = domain.DefaultIntervalMinutes
	}
	if o.DefaultDurationMinutes <= 0 {
		o.DefaultDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	return o
}

func (o SlotOptions) window() int {
	if o.DurationMinutes > 0 {
		return o.DurationMinutes
	}
	return o.IntervalMinutes
}

// BuildSlots генерирует слоты от StartHour с шагом IntervalMinutes.
// Слот, который закончился бы после EndHour, не генерируется.
// Слот недоступен, если окно [start, start+window) пересекается хотя бы с одним интервалом.
// Порядок слотов - по возрастанию времени. Часы вне 0..24 дают пустой список.
func BuildSlots(intervals []Interval, opts SlotOptions) []Slot {
	opts = opts.withDefaults()

	slots := make([]Slot, 0)
	if opts.StartHour < 0 || opts.EndHour > 24 || opts.StartHour >= opts.EndHour {
		return slots
	}

	workStart := opts.StartHour * 60
	workEnd := opts.EndHour * 60
	window := opts.window()

	for current := workStart; current+window <= workEnd; current += opts.IntervalMinutes {
		slots = append(slots, Slot{
			Time:      types.FormatMinutes(current),
			Available: !OverlapsAny(current, current+window, intervals),
		})
	}

	return slots
}

// BuildAvailabilitySlots нормализует сырые записи на дату и строит слоты.
// Некорректная дата даёт пустой список (ничего не доступно), а не ошибку.
func BuildAvailabilitySlots(records []BookingRecord, date string, opts SlotOptions) []Slot {
	day, err := ParseDate(date, opts.Location)
	if err != nil {
		return []Slot{}
	}

	opts = opts.withDefaults()
	intervals := NormalizeBookings(records, day, opts.DefaultDurationMinutes)
	return BuildSlots(intervals, opts)
}

// FilterAvailableTimes возвращает время доступных слотов в исходном порядке
func FilterAvailableTimes(slots []Slot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			times = append(times, s.Time)
		}
	}
	return times
}

// EarliestStart минимально допустимое начало записи на дату с учётом правил текущего дня:
// - другой (будущий) день: начало рабочего дня
// - прошедший день или сегодня после часа отсечки: конец рабочего дня (записи нет)
// - сегодня: max(начало дня, сейчас + минимальное упреждение)
func EarliestStart(day, now time.Time, rules domain.BookingRules) int {
	workStart := rules.WorkStartMinutes()
	workEnd := rules.WorkEndMinutes()

	now = now.In(day.Location())
	switch compareDates(day, now) {
	case 1:
		return workStart
	case -1:
		return workEnd
	}

	if now.Hour() >= rules.SameDayCutoffHour {
		return workEnd
	}

	earliest := now.Hour()*60 + now.Minute() + rules.SameDayMinAdvanceMinutes
	if earliest < workStart {
		earliest = workStart
	}
	if earliest > workEnd {
		earliest = workEnd
	}
	return earliest
}

// ApplySameDayRules помечает недоступными слоты, начинающиеся раньше EarliestStart.
// Входной срез не изменяется.
func ApplySameDayRules(slots []Slot, day, now time.Time, rules domain.BookingRules) []Slot {
	earliest := EarliestStart(day, now, rules)

	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = s
		minutes, err := types.ParseMinutes(s.Time)
		if err != nil || minutes < earliest {
			out[i].Available = false
		}
	}
	return out
}

// compareDates сравнивает календарные даты: -1 если a раньше b, 0 если совпадают, 1 если позже
func compareDates(a, b time.Time) int {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	da := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	db := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	switch {
	case da.Before(db):
		return -1
	case da.After(db):
		return 1
	default:
		return 0
	}
}
