package availability

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
)

// DayCapacity результат оценки вместимости дня
type DayCapacity struct {
	MaxGapMinutes   int `json:"maxGap"`
	RequiredMinutes int `json:"requiredMinutes"`
}

// HasCapacityFor проверяет, помещается ли услуга указанной длительности в самый большой свободный промежуток
func (c DayCapacity) HasCapacityFor(durationMinutes int) bool {
	return c.MaxGapMinutes >= durationMinutes
}

// HasGap проверяет вместимость для длительности, с которой считалась оценка
func (c DayCapacity) HasGap() bool {
	return c.HasCapacityFor(c.RequiredMinutes)
}

// MarshalJSON отдает оценку в виде {maxGap, hasGap, requiredMinutes}
func (c DayCapacity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MaxGapMinutes   int  `json:"maxGap"`
		HasGap          bool `json:"hasGap"`
		RequiredMinutes int  `json:"requiredMinutes"`
	}{
		MaxGapMinutes:   c.MaxGapMinutes,
		HasGap:          c.HasGap(),
		RequiredMinutes: c.RequiredMinutes,
	})
}

// MergeIntervals сортирует интервалы и склеивает пересекающиеся и соприкасающиеся.
// Результат не зависит от порядка входа, входной срез не изменяется.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// ComputeDayCapacity оценивает самый большой свободный промежуток на дату "YYYY-MM-DD".
// Дата интерпретируется в зоне now. Некорректная дата даёт нулевую вместимость.
func ComputeDayCapacity(date string, records []BookingRecord, requiredMinutes int, rules domain.BookingRules, now time.Time) DayCapacity {
	required := rules.ServiceDuration(requiredMinutes)

	day, err := ParseDate(date, now.Location())
	if err != nil {
		return DayCapacity{RequiredMinutes: required}
	}

	intervals := NormalizeBookings(records, day, rules.DefaultServiceDurationMinutes)
	return ComputeCapacity(day, intervals, required, rules, now)
}

// ComputeCapacity то же, что ComputeDayCapacity, для уже нормализованных интервалов
func ComputeCapacity(day time.Time, intervals []Interval, requiredMinutes int, rules domain.BookingRules, now time.Time) DayCapacity {
	capacity := DayCapacity{RequiredMinutes: rules.ServiceDuration(requiredMinutes)}

	if !rules.IsWorkingDay(day) {
		return capacity
	}

	capacity.MaxGapMinutes = maxGap(
		MergeIntervals(intervals),
		rules.WorkStartMinutes(),
		rules.WorkEndMinutes(),
		EarliestStart(day, now, rules),
	)
	return capacity
}

// maxGap проходит по склеенным занятым блокам и ищет самый длинный свободный промежуток
// внутри [workStart, workEnd), начинающийся не раньше earliest
func maxGap(blocks []Interval, workStart, workEnd, earliest int) int {
	cursor := workStart
	best := 0

	for _, block := range blocks {
		if block.End <= earliest {
			// блок целиком в прошлом или до отсечки
			if block.End > cursor {
				cursor = block.End
			}
			continue
		}

		gapStart := max(cursor, earliest)
		gapEnd := min(block.Start, workEnd)
		if gap := gapEnd - gapStart; gap > best {
			best = gap
		}

		if block.End > cursor {
			cursor = block.End
		}
	}

	if tail := workEnd - max(cursor, earliest); tail > best {
		best = tail
	}

	return best
}
