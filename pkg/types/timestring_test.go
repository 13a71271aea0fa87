package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "18:00:00", want: "18:00"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "garbage", input: "abc", wantErr: ErrInvalidTimeFormat},
		{name: "one digit minute", input: "10:5", wantErr: ErrInvalidTimeFormat},
		{name: "minute overflow", input: "10:60", wantErr: ErrTimeOutOfRange},
		{name: "after midnight", input: "24:30", wantErr: ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := MustTimeString("10:00")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:45", end.String())
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = MustTimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_ZeroValue(t *testing.T) {
	var ts TimeString

	assert.True(t, ts.IsZero())
	assert.Equal(t, "", ts.String())
	assert.Error(t, ts.Validate())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("12:15:00")))
	assert.Equal(t, "12:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, "08:05", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	payload := struct {
		Start TimeString `json:"start"`
	}{}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"11:45"}`), &payload))
	assert.Equal(t, 11*60+45, payload.Start.Minutes())

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"11:45"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"noon"}`), &payload))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	date := time.Date(2025, 1, 15, 17, 0, 0, 0, loc)

	got := MustTimeString("10:30").OnDate(date)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 0, loc), got)
}
