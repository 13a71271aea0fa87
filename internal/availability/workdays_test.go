package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/barber-booking/internal/domain"
)

func TestResolveWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  domain.Weekdays
	}{
		{
			name:  "portuguese with accents and suffixes",
			input: []string{"Segunda-feira", "Terça", "quarta", "QUINTA", "sexta-feira", "Sábado"},
			want:  domain.NewWeekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday),
		},
		{
			name:  "weekend",
			input: []string{"domingo", "sabado"},
			want:  domain.NewWeekdays(time.Sunday, time.Saturday),
		},
		{
			name:  "english short names",
			input: []string{" sat ", "Sun"},
			want:  domain.NewWeekdays(time.Sunday, time.Saturday),
		},
		{
			name:  "spanish",
			input: []string{"Miércoles", "viernes"},
			want:  domain.NewWeekdays(time.Wednesday, time.Friday),
		},
		{
			name:  "numbers",
			input: []string{"3", "7"},
			want:  domain.NewWeekdays(time.Wednesday),
		},
		{
			name:  "unknown names are ignored",
			input: []string{"feriado", "ter."},
			want:  domain.NewWeekdays(time.Tuesday),
		},
		{
			name:  "nothing recognised falls back to default",
			input: []string{"feriado"},
			want:  domain.DefaultWorkingDays,
		},
		{
			name: "empty input falls back to default",
			want: domain.DefaultWorkingDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWorkingDays(tt.input)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.IsEmpty())
		})
	}
}
