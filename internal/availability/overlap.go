package availability

// Interval полуоткрытый интервал [Start, End) в минутах от локальной полуночи
type Interval struct {
	Start int
	End   int
}

// Duration длительность интервала в минутах
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
//
// Примеры:
// - 10:00-10:30 и 10:15-10:45 → пересекаются
// - 10:00-10:30 и 10:30-11:00 → НЕ пересекаются (граничат)
// - 10:00-11:00 и 10:15-10:30 → пересекаются (вложенный интервал)
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsAny возвращает true на первом найденном пересечении
func OverlapsAny(start, end int, intervals []Interval) bool {
	for _, iv := range intervals {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
