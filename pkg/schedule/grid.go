package schedule

import (
	"time"

	"github.com/borgmon/meetcal/pkg/models"
)

const (
	fiveWeeks = 5 * 7
	sixWeeks  = 6 * 7
)

// DayCell is one cell of a month grid. InMonth is false for the leading
// and trailing days borrowed from adjacent months to fill whole weeks.
type DayCell struct {
	Date     Date
	InMonth  bool
	Meetings []models.Meeting
}

// BuildMonth produces the day cells for a displayed month: a Monday-first
// grid of exactly 5 or 6 full weeks. Every date of the month appears
// exactly once with InMonth set; padding cells borrow from the neighboring
// months. Cells are freshly allocated on every call, with no meetings
// attached yet.
func BuildMonth(year int, month time.Month) []DayCell {
	firstOfMonth := NewDate(year, month, 1)
	monthLength := DaysInMonth(year, month)

	// Monday-first offset of the 1st within its week, in [0,6].
	offset := mondayOffset(firstOfMonth)

	length := fiveWeeks
	if offset+monthLength > fiveWeeks {
		length = sixWeeks
	}

	grid := make([]DayCell, length)
	for i := range grid {
		grid[i] = DayCell{
			Date:    firstOfMonth.AddDays(i - offset),
			InMonth: !(i < offset || i-offset >= monthLength),
		}
	}
	return grid
}

// DaysInMonth returns the Gregorian length of the month, leap-year aware.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func mondayOffset(d Date) int {
	weekday := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
	// time.Weekday has Sunday == 0; shift so Monday == 0 ... Sunday == 6.
	return (int(weekday) + 6) % 7
}
