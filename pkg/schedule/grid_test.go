package schedule

import (
	"testing"
	"time"
)

func TestBuildMonthLength(t *testing.T) {
	// Every month of several years must produce a whole number of weeks,
	// either 5 or 6 of them.
	for year := 2020; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := BuildMonth(year, month)

			if len(grid)%7 != 0 {
				t.Errorf("%d-%02d: grid length %d is not a multiple of 7", year, month, len(grid))
			}
			if len(grid) != 35 && len(grid) != 42 {
				t.Errorf("%d-%02d: grid length %d, want 35 or 42", year, month, len(grid))
			}
		}
	}
}

func TestBuildMonthCoversMonthExactly(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := BuildMonth(year, month)

			seen := make(map[int]bool)
			for _, cell := range grid {
				if !cell.InMonth {
					continue
				}
				if cell.Date.Year != year || cell.Date.Month != month {
					t.Errorf("%d-%02d: in-month cell has date %s", year, month, cell.Date)
				}
				if seen[cell.Date.Day] {
					t.Errorf("%d-%02d: day %d appears twice", year, month, cell.Date.Day)
				}
				seen[cell.Date.Day] = true
			}

			want := DaysInMonth(year, month)
			if len(seen) != want {
				t.Errorf("%d-%02d: %d in-month cells, want %d", year, month, len(seen), want)
			}
			for day := 1; day <= want; day++ {
				if !seen[day] {
					t.Errorf("%d-%02d: day %d missing from grid", year, month, day)
				}
			}
		}
	}
}

func TestBuildMonthKnownLayouts(t *testing.T) {
	tests := []struct {
		year       int
		month      time.Month
		wantLen    int
		wantOffset int // index of the 1st within the grid
	}{
		{2024, time.March, 35, 4},    // March 1 2024 is a Friday
		{2024, time.February, 35, 3}, // leap February, Thursday start
		{2021, time.May, 42, 5},      // Saturday start, 31 days
		{2026, time.August, 42, 5},   // Saturday start, 31 days
		{2024, time.April, 35, 0},    // Monday start
		{2023, time.January, 42, 6},  // Sunday start, 31 days
	}

	for _, tt := range tests {
		grid := BuildMonth(tt.year, tt.month)
		if len(grid) != tt.wantLen {
			t.Errorf("%d-%02d: grid length %d, want %d", tt.year, tt.month, len(grid), tt.wantLen)
		}

		first := Date{Year: tt.year, Month: tt.month, Day: 1}
		if grid[tt.wantOffset].Date.Compare(first) != 0 {
			t.Errorf("%d-%02d: cell %d is %s, want %s",
				tt.year, tt.month, tt.wantOffset, grid[tt.wantOffset].Date, first)
		}
		if tt.wantOffset > 0 && grid[tt.wantOffset-1].InMonth {
			t.Errorf("%d-%02d: padding cell %d marked in-month", tt.year, tt.month, tt.wantOffset-1)
		}
	}
}

func TestBuildMonthPaddingDatesAreContiguous(t *testing.T) {
	grid := BuildMonth(2024, time.March)

	for i := 1; i < len(grid); i++ {
		want := grid[i-1].Date.AddDays(1)
		if grid[i].Date.Compare(want) != 0 {
			t.Fatalf("cell %d: date %s, want %s", i, grid[i].Date, want)
		}
	}
}

func TestBuildMonthIsIdempotent(t *testing.T) {
	a := BuildMonth(2025, time.July)
	b := BuildMonth(2025, time.July)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Date.Compare(b[i].Date) != 0 || a[i].InMonth != b[i].InMonth {
			t.Errorf("cell %d differs between identical builds", i)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2100, time.February, 28}, // century, not a leap year
		{2000, time.February, 29}, // divisible by 400
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
