package models

import (
	"testing"
	"time"
)

func TestGetReminderMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"empty always includes start", "", []int{0}},
		{"single value", "5", []int{0, 5}},
		{"multiple values", "5,15", []int{0, 5, 15}},
		{"whitespace tolerated", " 5 , 15 ", []int{0, 5, 15}},
		{"duplicates collapsed", "5,5,15", []int{0, 5, 15}},
		{"explicit zero not doubled", "0,5", []int{0, 5}},
		{"garbage skipped", "5,abc,15", []int{0, 5, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{RemindBeforeMin: tt.input}
			got := config.GetReminderMinutes()

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLocation(t *testing.T) {
	config := &Config{Timezone: "Europe/Berlin"}
	if got := config.Location().String(); got != "Europe/Berlin" {
		t.Errorf("got %s, want Europe/Berlin", got)
	}

	config = &Config{}
	if got := config.Location().String(); got != DefaultTimezone {
		t.Errorf("empty timezone: got %s, want %s", got, DefaultTimezone)
	}

	config = &Config{Timezone: "Not/AZone"}
	if got := config.Location().String(); got != DefaultTimezone {
		t.Errorf("unknown timezone: got %s, want %s", got, DefaultTimezone)
	}
}

func TestNeedsConfiguration(t *testing.T) {
	config := &Config{}
	if !config.NeedsConfiguration() {
		t.Error("empty config should need configuration")
	}

	config.ServerURL = "http://localhost:8080"
	if config.NeedsConfiguration() {
		t.Error("configured backend should not need configuration")
	}
}

func TestRoundToMinute(t *testing.T) {
	in := time.Date(2024, time.March, 8, 12, 34, 56, 789, time.UTC)
	want := time.Date(2024, time.March, 8, 12, 34, 0, 0, time.UTC)

	if got := RoundToMinute(in); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
