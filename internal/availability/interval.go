package availability

import (
	"strings"
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/types"
)

// BookingRecord сырая запись о бронировании в одной из двух форм:
// - пара временных меток StartTS/EndTS (ISO-8601), либо StartTS + DurationMinutes (или длительность по умолчанию)
// - локальное время Time ("HH:MM") + DurationMinutes
type BookingRecord struct {
	StartTS         string                   `json:"start_ts,omitempty"`
	EndTS           string                   `json:"end_ts,omitempty"`
	Time            string                   `json:"time,omitempty"`
	DurationMinutes int                      `json:"duration,omitempty"`
	Status          domain.ReservationStatus `json:"status,omitempty"`
}

// timestampLayouts допустимые форматы временных меток, без зоны время считается локальным для даты
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate разбирает дату "YYYY-MM-DD" в указанной зоне
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), loc)
}

// RecordsFromBookings конвертирует сохранённые бронирования в записи формата "время + длительность"
func RecordsFromBookings(bookings []*domain.Booking) []BookingRecord {
	records := make([]BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		records = append(records, BookingRecord{
			Time:            b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
		})
	}
	return records
}

// NormalizeBookings приводит записи к интервалам в минутах для указанной даты.
// Неактивные записи, записи без времени и записи с end <= start пропускаются без ошибки.
// Интервалы из временных меток обрезаются границами суток date.
func NormalizeBookings(records []BookingRecord, date time.Time, defaultDuration int) []Interval {
	intervals := make([]Interval, 0, len(records))

	for _, r := range records {
		if r.Status != "" && !r.Status.IsActive() {
			continue
		}

		var (
			iv Interval
			ok bool
		)
		switch {
		case r.StartTS != "":
			iv, ok = timestampInterval(r, date, defaultDuration)
		case r.Time != "":
			iv, ok = localTimeInterval(r, defaultDuration)
		}

		if !ok || iv.End <= iv.Start {
			continue
		}
		intervals = append(intervals, iv)
	}

	return intervals
}

func localTimeInterval(r BookingRecord, defaultDuration int) (Interval, bool) {
	start, err := types.ParseMinutes(r.Time)
	if err != nil {
		return Interval{}, false
	}

	duration := r.DurationMinutes
	if duration <= 0 {
		duration = defaultDuration
	}

	return Interval{Start: start, End: start + duration}, true
}

func timestampInterval(r BookingRecord, date time.Time, defaultDuration int) (Interval, bool) {
	loc := date.Location()

	startTS, ok := parseTimestamp(r.StartTS, loc)
	if !ok {
		return Interval{}, false
	}

	var endTS time.Time
	switch {
	case r.EndTS != "":
		endTS, ok = parseTimestamp(r.EndTS, loc)
		if !ok {
			return Interval{}, false
		}
	case r.DurationMinutes > 0:
		endTS = startTS.Add(time.Duration(r.DurationMinutes) * time.Minute)
	default:
		endTS = startTS.Add(time.Duration(defaultDuration) * time.Minute)
	}

	if !endTS.After(startTS) {
		return Interval{}, false
	}

	return Interval{
		Start: minutesOnDate(startTS, date, false),
		End:   minutesOnDate(endTS, date, true),
	}, true
}

func parseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// minutesOnDate переводит момент времени в минуты от полуночи date (в зоне date).
// Моменты до date дают 0, после date - конец суток. Для конца интервала секунды округляются вверх.
func minutesOnDate(t time.Time, date time.Time, roundUp bool) int {
	local := t.In(date.Location())

	y1, m1, d1 := local.Date()
	y2, m2, d2 := date.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	target := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	switch {
	case day.Before(target):
		return 0
	case day.After(target):
		return types.MinutesInDay
	}

	minutes := local.Hour()*60 + local.Minute()
	if roundUp && (local.Second() > 0 || local.Nanosecond() > 0) {
		minutes++
	}
	return minutes
}
