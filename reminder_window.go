package main

import (
	"fmt"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/audio"
	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
	"github.com/borgmon/meetcal/pkg/ui/components"
)

// ReminderWindow is the full-screen notification shown when a meeting
// reminder fires. Dismiss and snooze require holding their buttons so a
// stray click cannot silence the reminder.
type ReminderWindow struct {
	window  fyne.Window
	app     fyne.App
	meeting models.Meeting
	config  *models.Config

	onClose  func()
	onSnooze func()

	chime *audio.Player
}

func NewReminderWindow(app fyne.App, meeting models.Meeting, config *models.Config, onClose, onSnooze func()) *ReminderWindow {
	rw := &ReminderWindow{
		app:      app,
		meeting:  meeting,
		config:   config,
		onClose:  onClose,
		onSnooze: onSnooze,
	}

	if config.PlayChime {
		rw.chime = audio.PlayChime()
	}

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		rw.window = app.NewWindow("Meeting Reminder")
		rw.window.SetFullScreen(true)
		rw.buildUI()

		rw.window.SetOnClosed(func() {
			if rw.chime != nil {
				rw.chime.Stop()
			}
		})
	})

	return rw
}

func (rw *ReminderWindow) buildUI() {
	title := canvas.NewText(rw.meeting.Topic, theme.ForegroundColor())
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	timeText := rw.meeting.StartTime
	if start, err := schedule.ParseInstant(rw.meeting.StartTime); err == nil {
		timeText = "Starts at " + start.In(rw.config.Location()).Format("3:04 PM")
	}
	timeLabel := widget.NewLabel(timeText)
	timeLabel.Alignment = fyne.TextAlignCenter

	holdTime := time.Duration(rw.config.HoldTimeSeconds) * time.Second

	content := container.NewVBox(
		container.NewPadded(title),
		timeLabel,
		widget.NewSeparator(),
	)

	if rw.meeting.JoinURL != "" {
		joinButton := widget.NewButton("Join Meeting", func() {
			if u, err := url.Parse(rw.meeting.JoinURL); err == nil {
				rw.app.OpenURL(u)
			}
		})
		joinButton.Importance = widget.HighImportance
		content.Add(container.NewCenter(joinButton))
	}

	content.Add(widget.NewSeparator())

	buttonRow := container.NewHBox()
	if rw.config.SnoozeTime > 0 {
		snoozeButton := components.NewHoldButton(
			fmt.Sprintf("Snooze %dm (Hold %ds)", rw.config.SnoozeTime, rw.config.HoldTimeSeconds),
			holdTime,
			func() {
				if rw.onSnooze != nil {
					rw.onSnooze()
				}
				rw.window.Close()
			})
		buttonRow.Add(snoozeButton)
	}
	buttonRow.Add(components.NewHoldButton(
		fmt.Sprintf("Close (Hold %ds)", rw.config.HoldTimeSeconds),
		holdTime,
		func() {
			if rw.onClose != nil {
				rw.onClose()
			}
			rw.window.Close()
		}))

	content.Add(buttonRow)

	rw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (rw *ReminderWindow) Show() {
	fyne.Do(func() {
		if rw.window != nil {
			rw.window.Show()
		}
	})
}
