// Package workflow implements the meeting modal's state machine: which
// mode the modal is in, which day and meeting are selected, and the
// validation gate in front of create/update submissions.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
)

// Mode is the modal's current purpose.
type Mode string

const (
	ModeClosed Mode = "Closed"
	ModeAdd    Mode = "Add"
	ModeView   Mode = "View"
	ModeEdit   Mode = "Edit"
	ModeDelete Mode = "Delete"
)

// ErrInvalidTransition is returned when an event arrives in a mode whose
// guard rejects it. Callers treat it as a no-op.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// ValidationError is a field-level rejection of a submission. The state
// machine does not change mode when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Action identifies the remote call a validated request asks for.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Payload is a candidate submission from the add/edit form.
type Payload struct {
	Topic string
	Hour  int
	Min   int
}

// Request is a validated submission handed to the host. The host performs
// the remote call off-thread and reports back through Completed. The epoch
// ties the completion to the selection that produced it; completions from
// a discarded selection are ignored.
type Request struct {
	Action    Action
	MeetingID string    // empty for create
	Topic     string    // empty for delete
	Start     time.Time // zero for delete
	epoch     uint64
}

// State is the externally visible workflow state.
type State struct {
	Mode              Mode
	SelectedDate      schedule.Date
	SelectedMeetingID string
}

// Workflow drives the modal. All methods must be called from the single
// UI thread; async completions are funneled back through Completed.
type Workflow struct {
	state State
	zone  *time.Location
	now   func() time.Time
	epoch uint64

	// OnChange, if set, is invoked after every accepted transition so
	// the host can redraw. It runs on the caller's thread.
	OnChange func(State)
}

// New creates a closed workflow using the given display zone and clock.
func New(zone *time.Location, now func() time.Time) *Workflow {
	if now == nil {
		now = time.Now
	}
	return &Workflow{
		state: State{Mode: ModeClosed},
		zone:  zone,
		now:   now,
	}
}

// State returns a copy of the current workflow state.
func (w *Workflow) State() State {
	return w.state
}

// Today returns the current calendar date in the display zone.
func (w *Workflow) Today() schedule.Date {
	return schedule.DateOf(w.now(), w.zone)
}

// DayClicked opens the add form for a day. Past days are rejected.
func (w *Workflow) DayClicked(date schedule.Date) error {
	if date.Compare(w.Today()) < 0 {
		return ErrInvalidTransition
	}

	w.setState(State{Mode: ModeAdd, SelectedDate: date})
	return nil
}

// MeetingClicked opens the view modal for a meeting. Meetings that have
// already started, or whose start instant does not parse, are rejected.
func (w *Workflow) MeetingClicked(meeting models.Meeting) error {
	start, err := schedule.ParseInstant(meeting.StartTime)
	if err != nil {
		return fmt.Errorf("meeting %s: %w", meeting.ID, err)
	}
	if schedule.IsPast(start, w.now()) {
		return ErrInvalidTransition
	}

	w.setState(State{
		Mode:              ModeView,
		SelectedDate:      schedule.DateOf(start, w.zone),
		SelectedMeetingID: meeting.ID,
	})
	return nil
}

// EditRequested moves from View to the edit form.
func (w *Workflow) EditRequested() error {
	if w.state.Mode != ModeView {
		return ErrInvalidTransition
	}
	w.setMode(ModeEdit)
	return nil
}

// DeleteRequested moves from View to the delete confirmation.
func (w *Workflow) DeleteRequested() error {
	if w.state.Mode != ModeView {
		return ErrInvalidTransition
	}
	w.setMode(ModeDelete)
	return nil
}

// BackToView returns from the delete confirmation to the view modal.
func (w *Workflow) BackToView() error {
	if w.state.Mode != ModeDelete {
		return ErrInvalidTransition
	}
	w.setMode(ModeView)
	return nil
}

// Cancelled closes the modal from any open mode and clears the selection.
// Any in-flight request for the discarded selection becomes stale.
func (w *Workflow) Cancelled() error {
	if w.state.Mode == ModeClosed {
		return ErrInvalidTransition
	}
	w.epoch++
	w.setState(State{Mode: ModeClosed})
	return nil
}

// Submitted validates a candidate payload in Add or Edit mode and mints
// the create/update request for the host to execute. A validation failure
// leaves the mode unchanged.
func (w *Workflow) Submitted(payload Payload) (Request, error) {
	if w.state.Mode != ModeAdd && w.state.Mode != ModeEdit {
		return Request{}, ErrInvalidTransition
	}
	if w.state.SelectedDate.IsZero() {
		return Request{}, &ValidationError{Field: "start_time", Message: "Please select a date first!"}
	}
	if payload.Topic == "" {
		return Request{}, &ValidationError{Field: "topic", Message: "Topic is required"}
	}
	if payload.Hour < 0 || payload.Hour > 23 || payload.Min < 0 || payload.Min > 59 {
		return Request{}, &ValidationError{Field: "start_time", Message: "Time is required"}
	}

	start := w.state.SelectedDate.At(payload.Hour, payload.Min, w.zone)
	if start.Before(w.now()) {
		return Request{}, &ValidationError{Field: "start_time", Message: "Cannot select past time!"}
	}

	w.epoch++
	request := Request{
		Topic: payload.Topic,
		Start: start,
		epoch: w.epoch,
	}
	if w.state.Mode == ModeAdd {
		request.Action = ActionCreate
	} else {
		request.Action = ActionUpdate
		request.MeetingID = w.state.SelectedMeetingID
	}
	return request, nil
}

// DeleteConfirmed mints the delete request from the confirmation modal.
func (w *Workflow) DeleteConfirmed() (Request, error) {
	if w.state.Mode != ModeDelete {
		return Request{}, ErrInvalidTransition
	}
	w.epoch++
	return Request{
		Action:    ActionDelete,
		MeetingID: w.state.SelectedMeetingID,
		epoch:     w.epoch,
	}, nil
}

// Completed reports the outcome of a request's remote call. Stale
// requests (the selection was discarded or replaced since the request was
// minted) are ignored. On success the modal closes and the caller should
// refresh the meeting list; on failure the mode is unchanged so the user
// can retry or cancel. The return value says whether the modal closed.
func (w *Workflow) Completed(request Request, err error) bool {
	if request.epoch != w.epoch || w.state.Mode == ModeClosed {
		return false
	}
	if err != nil {
		return false
	}

	w.epoch++
	w.setState(State{Mode: ModeClosed})
	return true
}

func (w *Workflow) setMode(mode Mode) {
	state := w.state
	state.Mode = mode
	w.setState(state)
}

func (w *Workflow) setState(state State) {
	// selectedMeetingId is only meaningful while viewing/editing/deleting
	// an existing meeting.
	if state.Mode == ModeClosed || state.Mode == ModeAdd {
		if state.Mode == ModeClosed {
			state.SelectedDate = schedule.Date{}
		}
		state.SelectedMeetingID = ""
	}

	w.state = state
	if w.OnChange != nil {
		w.OnChange(w.state)
	}
}
