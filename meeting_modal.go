package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
	"github.com/borgmon/meetcal/pkg/workflow"
)

// showMeetingModal opens the dialog for the workflow's current mode.
// View, Edit and Delete re-enter here as the workflow moves between
// modes inside one selection.
func (cw *CalendarWindow) showMeetingModal() {
	state := cw.flow.State()

	switch state.Mode {
	case workflow.ModeAdd:
		cw.showFormDialog("Schedule a Meeting", models.Meeting{})
	case workflow.ModeView:
		cw.showViewDialog(state)
	case workflow.ModeEdit:
		meeting, ok := cw.mc.meetingStore.Get(state.SelectedMeetingID)
		if !ok {
			log.Printf("Meeting %s vanished before edit", state.SelectedMeetingID)
			cw.flow.Cancelled()
			return
		}
		cw.showFormDialog("Edit Meeting", meeting)
	case workflow.ModeDelete:
		cw.showDeleteDialog(state)
	}
}

var hourOptions = clockOptions(24)
var minuteOptions = clockOptions(60)

func clockOptions(n int) []string {
	options := make([]string, n)
	for i := 0; i < n; i++ {
		options[i] = fmt.Sprintf("%02d", i)
	}
	return options
}

// showFormDialog is the add/edit form. The dialog stays open while the
// backend call is in flight so a failure can be retried in place.
func (cw *CalendarWindow) showFormDialog(title string, meeting models.Meeting) {
	state := cw.flow.State()

	topicEntry := widget.NewEntry()
	topicEntry.SetPlaceHolder("Topic")
	hourSelect := widget.NewSelect(hourOptions, nil)
	minSelect := widget.NewSelect(minuteOptions, nil)

	if meeting.ID != "" {
		topicEntry.SetText(meeting.Topic)
		if start, err := schedule.ParseInstant(meeting.StartTime); err == nil {
			local := start.In(cw.zone)
			hourSelect.SetSelected(fmt.Sprintf("%02d", local.Hour()))
			minSelect.SetSelected(fmt.Sprintf("%02d", local.Minute()))
		}
	}

	errorLabel := widget.NewLabel("")
	errorLabel.Importance = widget.DangerImportance
	errorLabel.Hide()

	dateLabel := widget.NewLabel("Date: " + state.SelectedDate.String())

	var d dialog.Dialog
	var saveButton *widget.Button

	cancelButton := widget.NewButton("Cancel", func() {
		cw.flow.Cancelled()
		d.Hide()
	})

	saveButton = widget.NewButton("Save", func() {
		payload := workflow.Payload{
			Topic: topicEntry.Text,
			Hour:  selectedInt(hourSelect),
			Min:   selectedInt(minSelect),
		}

		request, err := cw.flow.Submitted(payload)
		if err != nil {
			showFormError(errorLabel, err)
			return
		}

		saveButton.Disable()
		errorLabel.Hide()
		cw.executeRequest(request, d, errorLabel, saveButton)
	})
	saveButton.Importance = widget.HighImportance

	timeRow := container.NewHBox(
		widget.NewLabel("Time:"),
		hourSelect,
		widget.NewLabel(":"),
		minSelect,
	)

	content := container.NewVBox(
		dateLabel,
		topicEntry,
		timeRow,
		errorLabel,
		container.NewHBox(cancelButton, saveButton),
	)

	d = dialog.NewCustomWithoutButtons(title, content, cw.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

func (cw *CalendarWindow) showViewDialog(state workflow.State) {
	meeting, ok := cw.mc.meetingStore.Get(state.SelectedMeetingID)
	if !ok {
		log.Printf("Meeting %s vanished before view", state.SelectedMeetingID)
		cw.flow.Cancelled()
		return
	}

	topic := widget.NewLabel(meeting.Topic)
	topic.TextStyle = fyne.TextStyle{Bold: true}

	timeText := meeting.StartTime
	if start, err := schedule.ParseInstant(meeting.StartTime); err == nil {
		timeText = start.In(cw.zone).Format("Mon, 02 Jan 2006 15:04")
	}
	timeLabel := widget.NewLabel(timeText)

	var d dialog.Dialog

	buttons := container.NewHBox()
	if meeting.JoinURL != "" {
		joinButton := widget.NewButton("Join", func() {
			if u, err := url.Parse(meeting.JoinURL); err == nil {
				cw.mc.app.OpenURL(u)
			}
		})
		joinButton.Importance = widget.HighImportance
		buttons.Add(joinButton)
	}
	buttons.Add(widget.NewButton("Edit", func() {
		if err := cw.flow.EditRequested(); err != nil {
			return
		}
		d.Hide()
		cw.showMeetingModal()
	}))
	buttons.Add(widget.NewButton("Delete", func() {
		if err := cw.flow.DeleteRequested(); err != nil {
			return
		}
		d.Hide()
		cw.showMeetingModal()
	}))
	buttons.Add(widget.NewButton("Close", func() {
		cw.flow.Cancelled()
		d.Hide()
	}))

	content := container.NewVBox(
		topic,
		timeLabel,
		widget.NewSeparator(),
		buttons,
	)

	d = dialog.NewCustomWithoutButtons("Meeting", content, cw.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

func (cw *CalendarWindow) showDeleteDialog(state workflow.State) {
	meeting, _ := cw.mc.meetingStore.Get(state.SelectedMeetingID)

	message := widget.NewLabel(fmt.Sprintf("Delete %q? This cannot be undone.", meeting.Topic))
	message.Wrapping = fyne.TextWrapWord

	errorLabel := widget.NewLabel("")
	errorLabel.Importance = widget.DangerImportance
	errorLabel.Hide()

	var d dialog.Dialog
	var deleteButton *widget.Button

	backButton := widget.NewButton("Back", func() {
		if err := cw.flow.BackToView(); err != nil {
			return
		}
		d.Hide()
		cw.showMeetingModal()
	})

	deleteButton = widget.NewButton("Delete", func() {
		request, err := cw.flow.DeleteConfirmed()
		if err != nil {
			return
		}
		deleteButton.Disable()
		cw.executeRequest(request, d, errorLabel, deleteButton)
	})
	deleteButton.Importance = widget.DangerImportance

	content := container.NewVBox(
		message,
		errorLabel,
		container.NewHBox(backButton, deleteButton),
	)

	d = dialog.NewCustomWithoutButtons("Delete Meeting", content, cw.window)
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

// executeRequest runs the validated request against the backend off the
// main thread and reports the outcome back through the workflow.
func (cw *CalendarWindow) executeRequest(request workflow.Request, d dialog.Dialog, errorLabel *widget.Label, actionButton *widget.Button) {
	client := cw.mc.client

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		var err error
		if client == nil {
			err = errors.New("no meeting backend configured")
		} else {
			switch request.Action {
			case workflow.ActionCreate:
				_, err = client.CreateMeeting(ctx, request.Topic, request.Start)
			case workflow.ActionUpdate:
				_, err = client.UpdateMeeting(ctx, request.MeetingID, request.Topic, request.Start)
			case workflow.ActionDelete:
				err = client.DeleteMeeting(ctx, request.MeetingID)
			}
		}

		fyne.Do(func() {
			if cw.flow.Completed(request, err) {
				if request.Action == workflow.ActionDelete {
					cw.mc.meetingStore.Remove(request.MeetingID)
				}
				d.Hide()
				cw.Refresh()
				go cw.mc.syncMeetings()
				return
			}

			if err != nil {
				log.Printf("Request %s failed: %v", request.Action, err)
				errorLabel.SetText(fmt.Sprintf("Request failed: %v", err))
				errorLabel.Show()
				actionButton.Enable()
			}
		})
	}()
}

func showFormError(label *widget.Label, err error) {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		label.SetText(verr.Message)
	} else {
		label.SetText(err.Error())
	}
	label.Show()
}

// selectedInt parses a clock select's value, -1 when nothing is chosen.
func selectedInt(sel *widget.Select) int {
	if sel.Selected == "" {
		return -1
	}
	val, err := strconv.Atoi(sel.Selected)
	if err != nil {
		return -1
	}
	return val
}
