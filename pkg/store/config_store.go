package store

import (
	"fyne.io/fyne/v2"

	"github.com/borgmon/meetcal/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	return &models.Config{
		AutoStart:       prefs.BoolWithFallback("auto_start", false),
		ServerURL:       prefs.String("server_url"),
		APIToken:        prefs.String("api_token"),
		Timezone:        prefs.StringWithFallback("timezone", models.DefaultTimezone),
		UpdateInterval:  prefs.IntWithFallback("update_interval", 5),
		RemindBeforeMin: prefs.StringWithFallback("remind_before_min", "5,15"),
		SnoozeTime:      prefs.IntWithFallback("snooze_time", 4),
		HoldTimeSeconds: prefs.IntWithFallback("hold_time_seconds", 3),
		PlayChime:       prefs.BoolWithFallback("play_chime", true),
	}
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetString("server_url", config.ServerURL)
	prefs.SetString("api_token", config.APIToken)
	prefs.SetString("timezone", config.Timezone)
	prefs.SetInt("update_interval", config.UpdateInterval)
	prefs.SetString("remind_before_min", config.RemindBeforeMin)
	prefs.SetInt("snooze_time", config.SnoozeTime)
	prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	prefs.SetBool("play_chime", config.PlayChime)
}
