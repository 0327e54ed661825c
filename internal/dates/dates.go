// Package dates formats dataset timestamps for display.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDate is returned in place of a formatted value when the input
// cannot be parsed
const InvalidDate = "Invalid Date"

// JustNow is returned when less than a second has elapsed
const JustNow = "just now"

// LongLayout renders dates as "September 27, 2025"
const LongLayout = "January 2, 2006"

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type unit struct {
	name    string
	seconds int64
}

// Ordered largest first; the first unit that fits at least once wins.
var units = []unit{
	{"year", 31536000},
	{"month", 2592000},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// Parse reads a timestamp in one of the accepted layouts. Values without a
// zone are read as UTC.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Formatter formats timestamps relative to a clock
type Formatter struct {
	Now func() time.Time
}

// New returns a Formatter using the wall clock
func New() Formatter {
	return Formatter{Now: time.Now}
}

func (f Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Long formats value as "Month Day, Year"
func (f Formatter) Long(value string) string {
	t, ok := Parse(value)
	if !ok {
		return InvalidDate
	}
	return t.UTC().Format(LongLayout)
}

// Relative formats value as a coarse "time ago" string such as
// "3 days ago". Timestamps in the future report "just now".
func (f Formatter) Relative(value string) string {
	t, ok := Parse(value)
	if !ok {
		return InvalidDate
	}

	elapsed := elapsedSeconds(f.now(), t)
	for _, u := range units {
		n := elapsed / u.seconds
		if n >= 1 {
			return fmt.Sprintf("%d %s ago", n, plural(n, u.name))
		}
	}
	return JustNow
}

// elapsedSeconds returns the whole seconds from t to now, rounded down.
// time.Duration saturates near 292 years, so this works on Unix seconds.
func elapsedSeconds(now, t time.Time) int64 {
	secs := now.Unix() - t.Unix()
	if now.Nanosecond() < t.Nanosecond() {
		secs--
	}
	return secs
}

func plural(n int64, name string) string {
	if n > 1 {
		return name + "s"
	}
	return name
}

// LongFormat formats value with the wall clock formatter
func LongFormat(value string) string {
	return New().Long(value)
}

// RelativeFormat formats value relative to the current time
func RelativeFormat(value string) string {
	return New().Relative(value)
}
