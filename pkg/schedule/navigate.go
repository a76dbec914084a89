package schedule

import "time"

// NextMonth advances the (year, month) cursor by one calendar month,
// wrapping December into January of the next year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PreviousMonth retreats the (year, month) cursor by one calendar month,
// wrapping January into December of the previous year.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
