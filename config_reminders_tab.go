package main

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/ui/components"
)

func (cw *ConfigWindow) buildRemindersTab() fyne.CanvasObject {
	// Seed the offset list from config, skipping the implicit 0
	initial := []int{}
	for _, val := range cw.config.GetReminderMinutes() {
		if val > 0 {
			initial = append(initial, val)
		}
	}

	offsetOptions := []string{"1 min", "2 min", "3 min", "5 min", "10 min", "15 min", "20 min", "30 min", "45 min", "60 min"}
	var offsetsContainer *fyne.Container
	cw.remindBeforeList, offsetsContainer = components.NewMinutesList(initial, offsetOptions, func() {
		cw.markChanged()
	})

	// Snooze duration with 1-min increments
	snoozeOptions := []string{"0 min (disabled)"}
	for i := 1; i <= 15; i++ {
		snoozeOptions = append(snoozeOptions, strconv.Itoa(i)+" min")
	}
	cw.snoozeTimeSelect = widget.NewSelect(snoozeOptions, func(value string) {
		cw.markChanged()
	})
	if cw.config.SnoozeTime == 0 {
		cw.snoozeTimeSelect.SetSelected("0 min (disabled)")
	} else {
		cw.snoozeTimeSelect.SetSelected(strconv.Itoa(cw.config.SnoozeTime) + " min")
	}

	// Hold time (1-10 seconds)
	holdTimeOptions := []string{}
	for i := 1; i <= 10; i++ {
		holdTimeOptions = append(holdTimeOptions, strconv.Itoa(i)+" sec")
	}
	cw.holdTimeSelect = widget.NewSelect(holdTimeOptions, func(value string) {
		cw.markChanged()
	})
	currentHoldTime := cw.config.HoldTimeSeconds
	if currentHoldTime < 1 {
		currentHoldTime = 3
	}
	if currentHoldTime > 10 {
		currentHoldTime = 10
	}
	cw.holdTimeSelect.SetSelected(strconv.Itoa(currentHoldTime) + " sec")

	cw.playChimeCheck = widget.NewCheck("Play a chime when a reminder fires", func(checked bool) {
		cw.markChanged()
	})
	cw.playChimeCheck.SetChecked(cw.config.PlayChime)

	// Labels with help text
	remindBeforeLabel := widget.NewLabel("Remind Before:")
	remindBeforeHelp := widget.NewLabel("Always reminds at meeting start (0 min). Add additional early reminders here.")
	remindBeforeHelp.Wrapping = fyne.TextWrapWord
	remindBeforeHelp.Importance = widget.MediumImportance

	snoozeLabel := widget.NewLabel("Snooze Duration:")
	snoozeHelp := widget.NewLabel("Set to 0 to disable snooze functionality")
	snoozeHelp.Importance = widget.MediumImportance

	holdTimeLabel := widget.NewLabel("Button Hold Time:")
	holdTimeHelp := widget.NewLabel("How long to hold Close and Snooze buttons to activate")
	holdTimeHelp.Importance = widget.MediumImportance

	chimeLabel := widget.NewLabel("Chime:")
	chimeHelp := widget.NewLabel("The chime loops until the reminder is dismissed or snoozed")
	chimeHelp.Wrapping = fyne.TextWrapWord
	chimeHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(remindBeforeLabel, remindBeforeHelp),
		offsetsContainer,

		container.NewVBox(snoozeLabel, snoozeHelp),
		container.NewVBox(cw.snoozeTimeSelect),

		container.NewVBox(holdTimeLabel, holdTimeHelp),
		container.NewVBox(cw.holdTimeSelect),

		container.NewVBox(chimeLabel, chimeHelp),
		container.NewVBox(cw.playChimeCheck),
	)

	content := container.NewVBox(
		widget.NewLabel("Reminder Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
