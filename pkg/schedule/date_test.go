package schedule

import (
	"testing"
	"time"
)

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("loading zone: %v", err)
	}
	return loc
}

func TestDateOfCrossesMidnight(t *testing.T) {
	loc := jakarta(t)

	// 18:30 UTC is 01:30 the next day in Jakarta (UTC+7).
	instant := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)
	got := DateOf(instant, loc)
	want := Date{Year: 2024, Month: time.March, Day: 6}
	if got.Compare(want) != 0 {
		t.Errorf("DateOf = %s, want %s", got, want)
	}

	// The same instant stays on March 5 in UTC.
	if got := DateOf(instant, time.UTC); got.Compare(Date{2024, time.March, 5}) != 0 {
		t.Errorf("DateOf in UTC = %s, want 2024-03-05", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{Date{2024, time.March, 5}, Date{2024, time.March, 5}, 0},
		{Date{2024, time.March, 5}, Date{2024, time.March, 6}, -1},
		{Date{2024, time.March, 5}, Date{2024, time.February, 28}, 1},
		{Date{2023, time.December, 31}, Date{2024, time.January, 1}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Compare(tt.a); got != -tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		start Date
		days  int
		want  Date
	}{
		{Date{2024, time.March, 1}, -1, Date{2024, time.February, 29}},
		{Date{2023, time.March, 1}, -1, Date{2023, time.February, 28}},
		{Date{2024, time.December, 31}, 1, Date{2025, time.January, 1}},
		{Date{2024, time.March, 5}, 0, Date{2024, time.March, 5}},
	}

	for _, tt := range tests {
		if got := tt.start.AddDays(tt.days); got.Compare(tt.want) != 0 {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	if !IsPast(now.Add(-time.Second), now) {
		t.Error("instant one second ago should be past")
	}
	if IsPast(now, now) {
		t.Error("the current instant is not past")
	}
	if IsPast(now.Add(time.Minute), now) {
		t.Error("a future instant is not past")
	}
}

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("2024-03-05T07:30:00Z")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	want := time.Date(2024, time.March, 5, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseInstant = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "yesterday", "2024-03-05", "2024-03-05 07:30:00"} {
		if _, err := ParseInstant(bad); err == nil {
			t.Errorf("ParseInstant(%q) succeeded, want error", bad)
		}
	}
}

func TestDateString(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}
	if got := d.String(); got != "2024-03-05" {
		t.Errorf("String = %q, want %q", got, "2024-03-05")
	}
}
