package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/types"
)

func TestPlanDay_EdgeStartAfterBooking(t *testing.T) {
	rules := domain.DefaultBookingRules()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)

	plan := PlanDay(day, []Interval{{Start: 600, End: 645}}, 45, rules, now)

	require.True(t, plan.WorkingDay)
	require.Len(t, plan.Slots, 18)
	assert.False(t, slotByTime(t, plan.Slots, "10:30").Available)

	assert.Equal(t, "09:00", plan.StartTimes[0])
	assert.Len(t, plan.StartTimes, 15)
	assert.True(t, plan.CanStartAt(types.MustTimeString("10:45")))
	assert.False(t, plan.CanStartAt(types.MustTimeString("10:30")))
	assert.False(t, plan.CanStartAt(types.MustTimeString("09:30")))
	assert.False(t, plan.CanStartAt(types.MustTimeString("17:30")))

	assert.Equal(t, DayCapacity{MaxGapMinutes: 435, RequiredMinutes: 45}, plan.Capacity)
}

func TestPlanDay_NonWorkingDay(t *testing.T) {
	rules := domain.DefaultBookingRules()
	sunday := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)

	plan := PlanDay(sunday, nil, 30, rules, time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC))

	assert.False(t, plan.WorkingDay)
	assert.Empty(t, plan.Slots)
	assert.Empty(t, plan.StartTimes)
	assert.Equal(t, 0, plan.Capacity.MaxGapMinutes)
}

func TestPlanDay_SameDay(t *testing.T) {
	rules := domain.DefaultBookingRules()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	plan := PlanDay(day, nil, 30, rules, now)

	assert.False(t, slotByTime(t, plan.Slots, "11:30").Available)
	assert.True(t, slotByTime(t, plan.Slots, "12:00").Available)
	require.NotEmpty(t, plan.StartTimes)
	assert.Equal(t, "12:00", plan.StartTimes[0])
	assert.Equal(t, 360, plan.Capacity.MaxGapMinutes)
}

func TestPlanDay_PastDay(t *testing.T) {
	rules := domain.DefaultBookingRules()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	plan := PlanDay(day, nil, 30, rules, time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC))

	assert.Empty(t, plan.StartTimes)
	assert.Empty(t, FilterAvailableTimes(plan.Slots))
	assert.False(t, plan.Capacity.HasGap())
}
