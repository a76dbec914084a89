package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/zoomapi"
)

func (cw *ConfigWindow) buildServerTab() fyne.CanvasObject {
	cw.serverURLEntry = widget.NewEntry()
	cw.serverURLEntry.SetPlaceHolder("http://localhost:8080")
	cw.serverURLEntry.SetText(cw.config.ServerURL)
	cw.serverURLEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	cw.apiTokenEntry = widget.NewPasswordEntry()
	cw.apiTokenEntry.SetText(cw.config.APIToken)
	cw.apiTokenEntry.OnChanged = func(string) {
		cw.markChanged()
	}

	intervalOptions := []string{"1 min", "2 min", "5 min", "10 min", "15 min", "30 min", "60 min"}
	cw.updateIntervalSelect = widget.NewSelect(intervalOptions, func(value string) {
		cw.markChanged()
	})
	cw.updateIntervalSelect.SetSelected(intervalLabel(cw.config.UpdateInterval, intervalOptions))

	testStatusLabel := widget.NewLabel("")

	testButton := widget.NewButton("Test Connection", func() {
		serverURL := cw.serverURLEntry.Text
		if serverURL == "" {
			testStatusLabel.SetText("Enter a server URL first")
			testStatusLabel.Importance = widget.DangerImportance
			testStatusLabel.Refresh()
			return
		}

		testStatusLabel.SetText("Connecting...")
		testStatusLabel.Importance = widget.MediumImportance
		testStatusLabel.Refresh()

		client := zoomapi.NewClient(serverURL, cw.apiTokenEntry.Text)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
			defer cancel()

			meetings, err := client.ListMeetings(ctx)
			fyne.Do(func() {
				if err != nil {
					testStatusLabel.SetText("Connection failed: " + err.Error())
					testStatusLabel.Importance = widget.DangerImportance
				} else {
					testStatusLabel.SetText(fmt.Sprintf("Connected, %d meetings found", len(meetings)))
					testStatusLabel.Importance = widget.SuccessImportance
				}
				testStatusLabel.Refresh()
			})
		}()
	})

	serverLabel := widget.NewLabel("Server URL:")
	serverHelp := widget.NewLabel("Base URL of the meeting backend that proxies the Zoom API")
	serverHelp.Wrapping = fyne.TextWrapWord
	serverHelp.Importance = widget.MediumImportance

	tokenLabel := widget.NewLabel("API Token:")
	tokenHelp := widget.NewLabel("Optional bearer token sent with every request")
	tokenHelp.Importance = widget.MediumImportance

	intervalLabelWidget := widget.NewLabel("Sync Interval:")
	intervalHelp := widget.NewLabel("How often the meeting list is refreshed in the background")
	intervalHelp.Wrapping = fyne.TextWrapWord
	intervalHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(serverLabel, serverHelp),
		container.NewVBox(cw.serverURLEntry),

		container.NewVBox(tokenLabel, tokenHelp),
		container.NewVBox(cw.apiTokenEntry),

		container.NewVBox(intervalLabelWidget, intervalHelp),
		container.NewVBox(cw.updateIntervalSelect),
	)

	content := container.NewVBox(
		widget.NewLabel("Server Settings"),
		widget.NewSeparator(),
		form,
		widget.NewSeparator(),
		container.NewHBox(testButton, testStatusLabel),
	)

	return container.NewPadded(container.NewVScroll(content))
}

func intervalLabel(minutes int, options []string) string {
	for _, option := range options {
		var val int
		if _, err := fmt.Sscanf(option, "%d min", &val); err == nil && val == minutes {
			return option
		}
	}
	// Unknown interval falls back to the first option
	return options[0]
}
