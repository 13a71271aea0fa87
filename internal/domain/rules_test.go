package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/pkg/ptr"
)

func TestWeekdays(t *testing.T) {
	w := NewWeekdays(time.Monday, time.Friday, time.Weekday(9))

	assert.True(t, w.Has(time.Monday))
	assert.True(t, w.Has(time.Friday))
	assert.False(t, w.Has(time.Sunday))
	assert.False(t, w.Has(time.Weekday(9)))
	assert.Equal(t, []int{1, 5}, w.Ints())
	assert.Equal(t, "Mon,Fri", w.String())
	assert.False(t, w.IsEmpty())
	assert.True(t, NewWeekdays().IsEmpty())

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, DefaultWorkingDays.Ints())
}

func TestBookingRules_CopyOnWrite(t *testing.T) {
	base := DefaultBookingRules()

	tuesdayOnly := base.WithWorkingDays(NewWeekdays(time.Tuesday))
	longer := base.WithHours(8, 20).WithInterval(15)

	assert.Equal(t, DefaultWorkingDays, base.WorkingDays)
	assert.Equal(t, 9, base.StartHour)
	assert.Equal(t, 30, base.IntervalMinutes)

	assert.Equal(t, []int{2}, tuesdayOnly.WorkingDays.Ints())
	assert.Equal(t, 8, longer.StartHour)
	assert.Equal(t, 20, longer.EndHour)
	assert.Equal(t, 15, longer.IntervalMinutes)

	// пустое множество дней не применяется
	same := base.WithWorkingDays(NewWeekdays())
	assert.Equal(t, base, same)
}

func TestBookingRules_Helpers(t *testing.T) {
	rules := DefaultBookingRules()

	assert.Equal(t, 540, rules.WorkStartMinutes())
	assert.Equal(t, 1080, rules.WorkEndMinutes())
	assert.Equal(t, 45, rules.ServiceDuration(45))
	assert.Equal(t, 30, rules.ServiceDuration(0))

	wednesday := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)
	assert.True(t, rules.IsWorkingDay(wednesday))
	assert.False(t, rules.IsWorkingDay(sunday))
}

func TestBookingRules_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rules   BookingRules
		wantErr bool
	}{
		{name: "defaults", rules: DefaultBookingRules()},
		{name: "no working days", rules: BookingRules{
			StartHour: 9, EndHour: 18, IntervalMinutes: 30, DefaultServiceDurationMinutes: 30,
		}, wantErr: true},
		{name: "end before start", rules: DefaultBookingRules().WithHours(18, 9), wantErr: true},
		{name: "end after midnight", rules: DefaultBookingRules().WithHours(9, 25), wantErr: true},
		{name: "tiny interval", rules: DefaultBookingRules().WithInterval(1), wantErr: true},
		{name: "negative advance", rules: DefaultBookingRules().WithSameDay(16, -5), wantErr: true},
		{name: "zero default duration", rules: DefaultBookingRules().WithDefaultServiceDuration(0), wantErr: true},
		{name: "until midnight", rules: DefaultBookingRules().WithHours(10, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRules)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShopRules_Apply(t *testing.T) {
	base := DefaultBookingRules()

	var nilRules *ShopRules
	assert.Equal(t, base, nilRules.Apply(base))

	override := &ShopRules{
		ShopID:            7,
		WorkingDays:       ptr.Ptr(NewWeekdays(time.Saturday, time.Sunday)),
		EndHour:           ptr.Ptr(20),
		SameDayCutoffHour: ptr.Ptr(18),
	}

	applied := override.Apply(base)
	require.NoError(t, applied.Validate())

	assert.Equal(t, []int{0, 6}, applied.WorkingDays.Ints())
	assert.Equal(t, 9, applied.StartHour)
	assert.Equal(t, 20, applied.EndHour)
	assert.Equal(t, 18, applied.SameDayCutoffHour)
	assert.Equal(t, 120, applied.SameDayMinAdvanceMinutes)

	// базовые правила не изменились
	assert.Equal(t, 18, base.EndHour)
	assert.Equal(t, DefaultWorkingDays, base.WorkingDays)
}
