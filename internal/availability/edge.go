package availability

import (
	"sort"

	"github.com/m04kA/barber-booking/pkg/types"
)

// RebuildEdgeSlots добавляет к currentSlots начала, не попадающие в базовую сетку, но допустимые
// для услуги длительностью requiredMinutes:
//   - позиция сетки m, чьё базовое окно заканчивается ровно в начале бронирования,
//     если вся услуга [m, m+required) успевает до этого бронирования
//   - момент окончания любого бронирования (запись "встык")
//
// Каждый кандидат должен целиком помещаться в [workStart, workEnd) и не пересекаться ни с одним интервалом.
// Результат без дубликатов и отсортирован по "HH:MM".
func RebuildEdgeSlots(currentSlots []string, intervals []Interval, requiredMinutes, baseIntervalMinutes, workStart, workEnd int) []string {
	seen := make(map[string]struct{}, len(currentSlots))
	for _, s := range currentSlots {
		seen[s] = struct{}{}
	}

	fits := func(start int) bool {
		end := start + requiredMinutes
		return start >= workStart && end <= workEnd && !OverlapsAny(start, end, intervals)
	}

	if requiredMinutes > 0 && baseIntervalMinutes > 0 {
		for m := workStart; m < workEnd; m += baseIntervalMinutes {
			baseEnd := m + baseIntervalMinutes
			for _, iv := range intervals {
				if iv.Start != baseEnd {
					continue
				}
				if m+requiredMinutes > iv.Start {
					continue
				}
				if fits(m) {
					seen[types.FormatMinutes(m)] = struct{}{}
				}
			}
		}

		for _, iv := range intervals {
			if fits(iv.End) {
				seen[types.FormatMinutes(iv.End)] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(seen))
	for s := range seen {
		result = append(result, s)
	}
	sort.Strings(result)

	return result
}

// dropBefore убирает время раньше minutes
func dropBefore(times []string, minutes int) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		m, err := types.ParseMinutes(t)
		if err != nil || m < minutes {
			continue
		}
		out = append(out, t)
	}
	return out
}
