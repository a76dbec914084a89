package models

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone is the fixed display zone used when none is configured.
// Past/future classification always happens in this zone, never in the
// viewer's locale.
const DefaultTimezone = "Asia/Jakarta"

// Config holds application configuration
type Config struct {
	AutoStart       bool   `json:"auto_start"`
	ServerURL       string `json:"server_url"`        // Meeting backend base URL
	APIToken        string `json:"api_token"`         // Bearer token for the backend
	Timezone        string `json:"timezone"`          // IANA display timezone
	UpdateInterval  int    `json:"update_interval"`   // minutes between meeting list syncs
	RemindBeforeMin string `json:"remind_before_min"` // comma-separated minutes
	SnoozeTime      int    `json:"snooze_time"`       // minutes
	HoldTimeSeconds int    `json:"hold_time_seconds"` // reminder button hold time
	PlayChime       bool   `json:"play_chime"`        // play a chime when a reminder fires
}

// NeedsConfiguration returns true if the config needs initial setup
func (c *Config) NeedsConfiguration() bool {
	return c.ServerURL == ""
}

// Location resolves the configured display timezone, falling back to the
// default zone if the value is empty or unknown.
func (c *Config) Location() *time.Location {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}

// GetReminderMinutes returns the list of reminder minutes including 0 (meeting start)
func (c *Config) GetReminderMinutes() []int {
	minutes := []int{0} // Always remind at meeting start

	if c.RemindBeforeMin == "" {
		return minutes
	}

	parts := strings.Split(c.RemindBeforeMin, ",")
	seen := make(map[int]bool)
	seen[0] = true

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if min, err := strconv.Atoi(part); err == nil {
			// Skip 0 since we always add it, and skip duplicates
			if min > 0 && !seen[min] {
				minutes = append(minutes, min)
				seen[min] = true
			}
		}
	}

	return minutes
}
