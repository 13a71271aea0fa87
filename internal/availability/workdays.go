package availability

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/m04kA/barber-booking/internal/domain"
)

// weekdayNames названия дней недели без диакритики в нижнем регистре (pt, es, en, полные и короткие)
var weekdayNames = map[string]time.Weekday{
	"domingo": time.Sunday, "dom": time.Sunday, "sunday": time.Sunday, "sun": time.Sunday,
	"segunda": time.Monday, "seg": time.Monday, "lunes": time.Monday, "monday": time.Monday, "mon": time.Monday,
	"terca": time.Tuesday, "ter": time.Tuesday, "martes": time.Tuesday, "tuesday": time.Tuesday, "tue": time.Tuesday,
	"quarta": time.Wednesday, "qua": time.Wednesday, "miercoles": time.Wednesday, "wednesday": time.Wednesday, "wed": time.Wednesday,
	"quinta": time.Thursday, "qui": time.Thursday, "jueves": time.Thursday, "thursday": time.Thursday, "thu": time.Thursday,
	"sexta": time.Friday, "sex": time.Friday, "viernes": time.Friday, "friday": time.Friday, "fri": time.Friday,
	"sabado": time.Saturday, "sab": time.Saturday, "saturday": time.Saturday, "sat": time.Saturday,
}

// ResolveWorkingDays переводит названия дней ("Segunda-feira", "terça", "Sábado", "sat", "3") в множество дней.
// Нераспознанные названия игнорируются. Если ничего не распознано, возвращаются рабочие дни по умолчанию,
// поэтому результат никогда не пустой.
func ResolveWorkingDays(dayNames []string) domain.Weekdays {
	days := make([]time.Weekday, 0, len(dayNames))
	for _, name := range dayNames {
		if d, ok := parseWeekday(name); ok {
			days = append(days, d)
		}
	}

	resolved := domain.NewWeekdays(days...)
	if resolved.IsEmpty() {
		return domain.DefaultWorkingDays
	}
	return resolved
}

func parseWeekday(name string) (time.Weekday, bool) {
	key := foldName(name)
	if key == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(key); err == nil {
		if n >= 0 && n <= 6 {
			return time.Weekday(n), true
		}
		return 0, false
	}

	key = strings.TrimSuffix(key, "-feira")
	key = strings.TrimSuffix(key, " feira")
	key = strings.TrimSuffix(key, ".")

	d, ok := weekdayNames[key]
	return d, ok
}

// foldName убирает диакритику, пробелы по краям и приводит к нижнему регистру
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
