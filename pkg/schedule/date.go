// Package schedule implements the calendar grid and meeting placement
// engine: date extraction in a fixed display zone, month grid
// construction, meeting bucketing and month navigation.
package schedule

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day component. Equality and
// ordering are structural on (year, month, day).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a normalized Date. Out-of-range components roll over the
// way time.Date rolls them (day 0 is the last day of the previous month).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf extracts the calendar date an instant falls on in the given zone.
func DateOf(t time.Time, zone *time.Location) Date {
	local := t.In(zone)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// ParseInstant parses an RFC3339 wire timestamp. Malformed values are the
// single source of parse errors in the engine; callers treat a failure as
// an unplaceable meeting rather than a fatal condition.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", s, err)
	}
	return t, nil
}

// IsPast reports whether the instant is strictly before now. Both sides
// are compared as absolute instants.
func IsPast(instant, now time.Time) bool {
	return instant.Before(now)
}

// Compare orders two dates structurally: -1 if d is before other, 0 if
// equal, 1 if after.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	case d.Day != other.Day:
		return sign(d.Day - other.Day)
	default:
		return 0
	}
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// IsZero reports whether d is the zero Date, used to mean "no date selected".
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// At combines the date with a time-of-day in the given zone.
func (d Date) At(hour, minute int, zone *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, zone)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
