package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) Formatter {
	return Formatter{Now: func() time.Time { return t }}
}

func TestLong(t *testing.T) {
	f := New()
	tests := []struct {
		input string
		want  string
	}{
		{"2025-09-27", "September 27, 2025"},
		{"2022-11-03T07:00:00.000Z", "November 3, 2022"},
		{"2024-01-01T23:30:00Z", "January 1, 2024"},
		{"2021-02-05T10:00:00", "February 5, 2021"},
		{"not a date", InvalidDate},
		{"", InvalidDate},
		{"2024-13-45", InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Long(tt.input))
			// same input, same output
			assert.Equal(t, f.Long(tt.input), LongFormat(tt.input))
		})
	}
}

func TestRelative(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := fixedClock(now)
	at := func(d time.Duration) string {
		return now.Add(-d).Format(time.RFC3339Nano)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"same instant", at(0), JustNow},
		{"half a second", at(500 * time.Millisecond), JustNow},
		{"one second", at(time.Second), "1 second ago"},
		{"seconds", at(42 * time.Second), "42 seconds ago"},
		{"ninety seconds", at(90 * time.Second), "1 minute ago"},
		{"hours", at(5 * time.Hour), "5 hours ago"},
		{"three days", at(3 * 24 * time.Hour), "3 days ago"},
		{"one month", at(31 * 24 * time.Hour), "1 month ago"},
		{"four hundred days", at(400 * 24 * time.Hour), "1 year ago"},
		{"two years ten days", at((2*365 + 10) * 24 * time.Hour), "2 years ago"},
		{"future clamps", at(-48 * time.Hour), JustNow},
		{"half a second ahead", at(-500 * time.Millisecond), JustNow},
		{"seventeenth century", "1600-01-01", "425 years ago"},
		{"year one", "0001-01-01", "2025 years ago"},
		{"invalid", "yesterday-ish", InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Relative(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	got, ok := Parse("2024-06-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = Parse("  ")
	assert.False(t, ok)
}

func TestRelativeFormatInvalid(t *testing.T) {
	assert.Equal(t, InvalidDate, RelativeFormat("garbage"))
}
