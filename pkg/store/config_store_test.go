package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/borgmon/meetcal/pkg/models"
)

func TestConfigDefaults(t *testing.T) {
	cs := NewConfigStore(test.NewApp())

	config := cs.Load()

	assert.True(t, config.NeedsConfiguration())
	assert.Equal(t, models.DefaultTimezone, config.Timezone)
	assert.Equal(t, 5, config.UpdateInterval)
	assert.Equal(t, "5,15", config.RemindBeforeMin)
	assert.True(t, config.PlayChime)
}

func TestConfigRoundTrip(t *testing.T) {
	cs := NewConfigStore(test.NewApp())

	saved := &models.Config{
		AutoStart:       true,
		ServerURL:       "http://localhost:8080",
		APIToken:        "secret",
		Timezone:        "Europe/Berlin",
		UpdateInterval:  10,
		RemindBeforeMin: "10,30",
		SnoozeTime:      2,
		HoldTimeSeconds: 5,
		PlayChime:       false,
	}
	cs.Save(saved)

	loaded := cs.Load()
	assert.Equal(t, saved, loaded)
	assert.False(t, loaded.NeedsConfiguration())
}
