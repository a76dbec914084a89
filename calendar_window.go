package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
	"github.com/borgmon/meetcal/pkg/ui/components"
	"github.com/borgmon/meetcal/pkg/workflow"
)

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CalendarWindow is the main window: a month grid on the left and the
// full meeting list on the right. Closing it hides the window; the app
// stays alive in the system tray.
type CalendarWindow struct {
	mc     *MeetCal
	window fyne.Window
	flow   *workflow.Workflow
	zone   *time.Location

	year  int
	month time.Month

	titleLabel  *widget.Label
	grid        *fyne.Container
	sidebar     *widget.List
	sidebarData []models.Meeting
	errorLabel  *widget.Label
}

func NewCalendarWindow(mc *MeetCal) *CalendarWindow {
	cw := &CalendarWindow{
		mc:   mc,
		zone: mc.config.Location(),
	}
	cw.flow = workflow.New(cw.zone, time.Now)

	today := cw.flow.Today()
	cw.year, cw.month = today.Year, today.Month

	cw.window = mc.app.NewWindow("MeetCal")
	cw.buildUI()
	cw.window.Resize(fyne.NewSize(1100, 720))
	cw.window.CenterOnScreen()

	// Hide instead of close so the tray can reopen the calendar
	cw.window.SetCloseIntercept(func() {
		cw.window.Hide()
	})

	return cw
}

func (cw *CalendarWindow) buildUI() {
	cw.titleLabel = widget.NewLabel(cw.monthTitle())
	cw.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	prevButton := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		cw.year, cw.month = schedule.PreviousMonth(cw.year, cw.month)
		cw.Refresh()
	})
	nextButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		cw.year, cw.month = schedule.NextMonth(cw.year, cw.month)
		cw.Refresh()
	})
	todayButton := widget.NewButton("Today", func() {
		today := cw.flow.Today()
		cw.year, cw.month = today.Year, today.Month
		cw.Refresh()
	})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			go cw.mc.syncMeetings()
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {
			cw.exportCalendar()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			cw.mc.showConfigWindow()
		}),
	)

	cw.errorLabel = widget.NewLabel("")
	cw.errorLabel.Importance = widget.DangerImportance
	cw.errorLabel.Hide()

	header := container.NewBorder(nil, nil,
		container.NewHBox(prevButton, todayButton, nextButton),
		cw.errorLabel,
		container.NewCenter(cw.titleLabel),
	)

	cw.grid = container.NewGridWithColumns(7)
	cw.rebuildGrid()

	cw.sidebar = widget.NewList(
		func() int {
			return len(cw.sidebarData)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(cw.sidebarData) {
				return
			}
			label := o.(*widget.Label)
			meeting := cw.sidebarData[i]
			if cw.isPast(meeting) {
				label.Importance = widget.LowImportance
				label.TextStyle = fyne.TextStyle{Italic: true}
			} else {
				label.Importance = widget.MediumImportance
				label.TextStyle = fyne.TextStyle{}
			}
			label.SetText(cw.sidebarText(meeting))
		})
	cw.sidebar.OnSelected = func(id widget.ListItemID) {
		cw.sidebar.UnselectAll()
		if id < len(cw.sidebarData) {
			cw.meetingClicked(cw.sidebarData[id])
		}
	}
	cw.refreshSidebar()

	sidebarBox := container.NewBorder(
		widget.NewLabel("All Meetings"),
		nil, nil, nil,
		cw.sidebar,
	)

	split := container.NewHSplit(
		container.NewBorder(header, nil, nil, nil, cw.grid),
		sidebarBox,
	)
	split.SetOffset(0.75)

	cw.window.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
}

func (cw *CalendarWindow) monthTitle() string {
	return fmt.Sprintf("%s %d", cw.month, cw.year)
}

// Refresh redraws the grid and sidebar from the store. Must run on the
// Fyne main thread.
func (cw *CalendarWindow) Refresh() {
	// The display zone can change through settings; pick up the new one
	// as long as no modal is open.
	if zone := cw.mc.config.Location(); zone.String() != cw.zone.String() &&
		cw.flow.State().Mode == workflow.ModeClosed {
		cw.zone = zone
		cw.flow = workflow.New(zone, time.Now)
	}

	cw.titleLabel.SetText(cw.monthTitle())
	cw.rebuildGrid()
	cw.refreshSidebar()
}

func (cw *CalendarWindow) rebuildGrid() {
	monthGrid := schedule.BuildMonth(cw.year, cw.month)
	if dropped := schedule.Place(monthGrid, cw.mc.meetingStore.Meetings(), cw.zone); dropped > 0 {
		log.Printf("%d meetings fall outside %s %d", dropped, cw.month, cw.year)
	}

	today := cw.flow.Today()

	objects := make([]fyne.CanvasObject, 0, len(monthGrid)+len(weekdayHeaders))
	for _, name := range weekdayHeaders {
		header := widget.NewLabel(name)
		header.Alignment = fyne.TextAlignCenter
		header.TextStyle = fyne.TextStyle{Bold: true}
		objects = append(objects, header)
	}

	for _, cell := range monthGrid {
		date := cell.Date
		dayCell := components.NewDayCell(
			strconv.Itoa(date.Day),
			cell.InMonth,
			date.Compare(today) == 0,
			func() {
				cw.dayClicked(date)
			},
		)

		chips := make([]fyne.CanvasObject, 0, len(cell.Meetings))
		for _, meeting := range cell.Meetings {
			meeting := meeting
			chip := widget.NewButton(cw.chipText(meeting), func() {
				cw.meetingClicked(meeting)
			})
			if cw.isPast(meeting) {
				chip.Importance = widget.LowImportance
			} else {
				chip.Importance = widget.HighImportance
			}
			chips = append(chips, chip)
		}
		dayCell.SetMeetings(chips)

		objects = append(objects, dayCell)
	}

	cw.grid.Objects = objects
	cw.grid.Refresh()
}

func (cw *CalendarWindow) refreshSidebar() {
	cw.sidebarData = cw.mc.meetingStore.Meetings()
	cw.sidebar.Refresh()
}

func (cw *CalendarWindow) chipText(meeting models.Meeting) string {
	start, err := schedule.ParseInstant(meeting.StartTime)
	if err != nil {
		return truncateString(meeting.Topic, 16)
	}
	return start.In(cw.zone).Format("15:04") + " " + truncateString(meeting.Topic, 12)
}

func (cw *CalendarWindow) sidebarText(meeting models.Meeting) string {
	start, err := schedule.ParseInstant(meeting.StartTime)
	if err != nil {
		return truncateString(meeting.Topic, 30)
	}

	local := start.In(cw.zone)
	today := cw.flow.Today()
	date := schedule.DateOf(start, cw.zone)

	var day string
	switch {
	case date.Compare(today) == 0:
		day = "Today"
	case date.Compare(today.AddDays(1)) == 0:
		day = "Tomorrow"
	default:
		day = date.String()
	}

	return fmt.Sprintf("%s %s  %s", day, local.Format("15:04"), truncateString(meeting.Topic, 30))
}

func (cw *CalendarWindow) isPast(meeting models.Meeting) bool {
	start, err := schedule.ParseInstant(meeting.StartTime)
	if err != nil {
		return false
	}
	return schedule.IsPast(start, time.Now())
}

func (cw *CalendarWindow) dayClicked(date schedule.Date) {
	if err := cw.flow.DayClicked(date); err != nil {
		log.Printf("Day %s not selectable: %v", date, err)
		return
	}
	cw.showMeetingModal()
}

func (cw *CalendarWindow) meetingClicked(meeting models.Meeting) {
	if err := cw.flow.MeetingClicked(meeting); err != nil {
		log.Printf("Meeting %s not selectable: %v", meeting.ID, err)
		return
	}
	cw.showMeetingModal()
}

// ShowTransportError surfaces a failed backend call as a transient
// banner. Must run on the Fyne main thread.
func (cw *CalendarWindow) ShowTransportError(err error) {
	message := fmt.Sprintf("Sync failed: %v", err)
	cw.errorLabel.SetText(message)
	cw.errorLabel.Show()

	go func() {
		time.Sleep(5 * time.Second)
		fyne.Do(func() {
			if cw.errorLabel.Text == message {
				cw.errorLabel.SetText("")
				cw.errorLabel.Hide()
			}
		})
	}()
}

func (cw *CalendarWindow) Show() {
	cw.window.Show()
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
