package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/types"
)

func TestNormalizeBookings(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		records []BookingRecord
		want    []Interval
	}{
		{
			name:    "time and duration",
			records: []BookingRecord{{Time: "10:00", DurationMinutes: 45}},
			want:    []Interval{{Start: 600, End: 645}},
		},
		{
			name:    "time without duration uses default",
			records: []BookingRecord{{Time: "10:00"}},
			want:    []Interval{{Start: 600, End: 630}},
		},
		{
			name:    "timestamp pair",
			records: []BookingRecord{{StartTS: "2025-01-15T10:00:00Z", EndTS: "2025-01-15T10:30:00Z"}},
			want:    []Interval{{Start: 600, End: 630}},
		},
		{
			name:    "timestamp with duration",
			records: []BookingRecord{{StartTS: "2025-01-15T12:15:00Z", DurationMinutes: 30}},
			want:    []Interval{{Start: 735, End: 765}},
		},
		{
			name:    "timestamp crossing midnight is clipped",
			records: []BookingRecord{{StartTS: "2025-01-14T23:00:00Z", EndTS: "2025-01-15T01:00:00Z"}},
			want:    []Interval{{Start: 0, End: 60}},
		},
		{
			name:    "end seconds round up",
			records: []BookingRecord{{StartTS: "2025-01-15T10:00:00Z", EndTS: "2025-01-15T10:30:30Z"}},
			want:    []Interval{{Start: 600, End: 631}},
		},
		{
			name:    "other day is ignored",
			records: []BookingRecord{{StartTS: "2025-01-16T10:00:00Z", EndTS: "2025-01-16T10:30:00Z"}},
			want:    []Interval{},
		},
		{
			name: "malformed rows are skipped",
			records: []BookingRecord{
				{},
				{Time: "ten"},
				{StartTS: "yesterday", EndTS: "2025-01-15T10:30:00Z"},
				{StartTS: "2025-01-15T11:00:00Z", EndTS: "2025-01-15T10:00:00Z"},
				{Time: "09:00", DurationMinutes: 30},
			},
			want: []Interval{{Start: 540, End: 570}},
		},
		{
			name:    "timestamp without end or duration takes default duration",
			records: []BookingRecord{{StartTS: "2025-01-15T11:00:00Z"}},
			want:    []Interval{{Start: 660, End: 690}},
		},
		{
			name: "inactive statuses are skipped",
			records: []BookingRecord{
				{Time: "09:00", DurationMinutes: 30, Status: domain.StatusCancelled},
				{Time: "10:00", DurationMinutes: 30, Status: domain.StatusNoShow},
				{Time: "11:00", DurationMinutes: 30, Status: domain.StatusCompleted},
				{Time: "12:00", DurationMinutes: 30, Status: domain.StatusInProgress},
				{Time: "13:00", DurationMinutes: 30, Status: domain.StatusPending},
			},
			want: []Interval{{Start: 720, End: 750}, {Start: 780, End: 810}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBookings(tt.records, day, domain.DefaultServiceDurationMinutes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBookings_ConvertsToDateLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)

	got := NormalizeBookings([]BookingRecord{
		{StartTS: "2025-01-15T13:00:00Z", EndTS: "2025-01-15T13:45:00Z"},
		{StartTS: "2025-01-15T15:00:00", EndTS: "2025-01-15T15:30:00"},
	}, day, 30)

	assert.Equal(t, []Interval{{Start: 600, End: 645}, {Start: 900, End: 930}}, got)
}

func TestRecordsFromBookings(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: types.MustTimeString("10:00"), DurationMinutes: 45, Status: domain.StatusConfirmed},
		nil,
		{StartTime: types.MustTimeString("12:30"), DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	records := RecordsFromBookings(bookings)
	require.Len(t, records, 2)
	assert.Equal(t, BookingRecord{Time: "10:00", DurationMinutes: 45, Status: domain.StatusConfirmed}, records[0])

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []Interval{{Start: 600, End: 645}}, NormalizeBookings(records, day, 30))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d.Weekday())

	_, err = ParseDate("15/01/2025", time.UTC)
	assert.Error(t, err)
}
