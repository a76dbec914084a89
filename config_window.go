package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/ui/components"
)

type ConfigWindow struct {
	window fyne.Window
	app    fyne.App
	config *models.Config
	onSave func(*models.Config)

	// General tab
	autoStartCheck *widget.Check
	timezoneSelect *widget.SelectEntry

	// Server tab
	serverURLEntry       *widget.Entry
	apiTokenEntry        *widget.Entry
	updateIntervalSelect *widget.Select

	// Reminders tab
	remindBeforeList *components.MinutesList
	snoozeTimeSelect *widget.Select
	holdTimeSelect   *widget.Select
	playChimeCheck   *widget.Check

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewConfigWindow(app fyne.App, config *models.Config, onSave func(*models.Config)) *ConfigWindow {
	cw := &ConfigWindow{
		app:    app,
		config: config,
		onSave: onSave,
	}

	cw.window = app.NewWindow("MeetCal - Settings")
	cw.buildUI()

	return cw
}

func (cw *ConfigWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", cw.buildGeneralTab()),
		container.NewTabItem("Server", cw.buildServerTab()),
		container.NewTabItem("Reminders", cw.buildRemindersTab()),
	)

	cw.saveStatusLabel = widget.NewLabel("")
	cw.saveStatusLabel.Importance = widget.SuccessImportance

	cw.saveButton = widget.NewButton("Save", func() {
		cw.triggerSave()
	})
	cw.saveButton.Importance = widget.HighImportance
	cw.saveButton.Disable() // Initially disabled until changes are made

	previewButton := widget.NewButton("Preview Reminder", func() {
		cw.showReminderPreview()
	})

	closeButton := widget.NewButton("Close", func() {
		cw.handleClose()
	})

	leftButtons := container.NewHBox(
		cw.saveButton,
		cw.saveStatusLabel,
	)
	rightButtons := container.NewHBox(
		previewButton,
		closeButton,
	)

	buttonRow := container.NewBorder(
		nil,
		nil,
		leftButtons,
		rightButtons,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	cw.window.SetContent(content)
	cw.window.Resize(fyne.NewSize(760, 620))
	cw.window.CenterOnScreen()

	// Escape closes, with the same unsaved-changes check as the button
	cw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			cw.handleClose()
		}
	})

	cw.window.SetCloseIntercept(func() {
		cw.handleClose()
	})
}

func (cw *ConfigWindow) triggerSave() {
	cw.saveButton.Disable()
	cw.saveStatusLabel.SetText("Saving...")
	cw.saveStatusLabel.Importance = widget.MediumImportance
	cw.saveStatusLabel.Refresh()

	newConfig := cw.getConfigFromUI()
	go func() {
		// Handle autostart setting
		if err := setupAutostart(newConfig.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
			fyne.Do(func() {
				cw.saveStatusLabel.SetText("Error: Failed to set autostart")
				cw.saveStatusLabel.Importance = widget.DangerImportance
				cw.saveStatusLabel.Refresh()
				cw.updateSaveButtonState()
			})
			return
		}

		if cw.onSave != nil {
			cw.onSave(newConfig)
		}
		cw.config = newConfig

		// Re-enable button and show success message
		fyne.Do(func() {
			cw.hasUnsavedChanges = false
			cw.saveStatusLabel.SetText("Settings saved successfully")
			cw.saveStatusLabel.Importance = widget.SuccessImportance
			cw.saveStatusLabel.Refresh()
			cw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if cw.saveStatusLabel.Text == "Settings saved successfully" {
						cw.saveStatusLabel.SetText("")
						cw.saveStatusLabel.Refresh()
					}
				})
			}()
		})
	}()
}

func (cw *ConfigWindow) showReminderPreview() {
	previewConfig := cw.getConfigFromUI()

	sample := models.Meeting{
		ID:        "preview",
		Topic:     "Sample Meeting",
		StartTime: time.Now().Add(5 * time.Minute).UTC().Format(time.RFC3339),
		JoinURL:   "https://zoom.example.com/j/000000000",
	}

	reminderWindow := NewReminderWindow(cw.app, sample, previewConfig, func() {}, func() {})
	reminderWindow.Show()
}

func (cw *ConfigWindow) getConfigFromUI() *models.Config {
	updateInterval := 5
	if cw.updateIntervalSelect.Selected != "" {
		// Parse "15 min" -> 15
		var val int
		if _, err := fmt.Sscanf(cw.updateIntervalSelect.Selected, "%d min", &val); err == nil {
			updateInterval = val
		}
	}

	snoozeTime := 4
	if cw.snoozeTimeSelect.Selected != "" {
		if cw.snoozeTimeSelect.Selected == "0 min (disabled)" {
			snoozeTime = 0
		} else {
			var val int
			if _, err := fmt.Sscanf(cw.snoozeTimeSelect.Selected, "%d min", &val); err == nil {
				snoozeTime = val
			}
		}
	}

	holdTime := 3
	if cw.holdTimeSelect.Selected != "" {
		var val int
		if _, err := fmt.Sscanf(cw.holdTimeSelect.Selected, "%d sec", &val); err == nil {
			holdTime = val
		}
	}

	timezone := cw.timezoneSelect.Text
	if timezone == "" {
		timezone = models.DefaultTimezone
	}

	return &models.Config{
		AutoStart:       cw.autoStartCheck.Checked,
		ServerURL:       cw.serverURLEntry.Text,
		APIToken:        cw.apiTokenEntry.Text,
		Timezone:        timezone,
		UpdateInterval:  updateInterval,
		RemindBeforeMin: cw.remindBeforeList.CSV(),
		SnoozeTime:      snoozeTime,
		HoldTimeSeconds: holdTime,
		PlayChime:       cw.playChimeCheck.Checked,
	}
}

func (cw *ConfigWindow) Show() {
	cw.window.Show()
}

// markChanged marks the config as having unsaved changes
func (cw *ConfigWindow) markChanged() {
	cw.hasUnsavedChanges = true
	cw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (cw *ConfigWindow) updateSaveButtonState() {
	if cw.saveButton != nil {
		if cw.hasUnsavedChanges {
			cw.saveButton.Enable()
		} else {
			cw.saveButton.Disable()
		}
	}
}

// handleClose handles window close with unsaved changes check
func (cw *ConfigWindow) handleClose() {
	if cw.hasActualChanges() {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved changes. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					cw.window.Close()
				}
			}, cw.window)
	} else {
		cw.window.Close()
	}
}

// hasActualChanges checks if the current UI state differs from the saved config
func (cw *ConfigWindow) hasActualChanges() bool {
	current := cw.getConfigFromUI()

	return current.AutoStart != cw.config.AutoStart ||
		current.ServerURL != cw.config.ServerURL ||
		current.APIToken != cw.config.APIToken ||
		current.Timezone != cw.config.Timezone ||
		current.UpdateInterval != cw.config.UpdateInterval ||
		current.RemindBeforeMin != cw.config.RemindBeforeMin ||
		current.SnoozeTime != cw.config.SnoozeTime ||
		current.HoldTimeSeconds != cw.config.HoldTimeSeconds ||
		current.PlayChime != cw.config.PlayChime
}
