package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/emersion/go-ical"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
)

// exportCalendar writes the current meeting list as an iCalendar file so
// the schedule can be imported into other calendar apps.
func (cw *CalendarWindow) exportCalendar() {
	meetings := cw.mc.meetingStore.Meetings()
	if len(meetings) == 0 {
		dialog.ShowInformation("Nothing to Export", "There are no meetings to export.", cw.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, cw.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		count, err := writeCalendar(writer, meetings)
		if err != nil {
			dialog.ShowError(fmt.Errorf("exporting calendar: %w", err), cw.window)
			return
		}
		log.Printf("Exported %d meetings to %s", count, writer.URI())
	}, cw.window)
	d.SetFileName("meetings.ics")
	d.Show()
}

func writeCalendar(w io.Writer, meetings []models.Meeting) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//borgmon//MeetCal//EN")

	now := time.Now()
	count := 0
	for _, meeting := range meetings {
		start, err := schedule.ParseInstant(meeting.StartTime)
		if err != nil {
			log.Printf("Skipping meeting %s in export: %v", meeting.ID, err)
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, meeting.ID+"@meetcal")
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetText(ical.PropSummary, meeting.Topic)
		if meeting.JoinURL != "" {
			event.Props.SetText(ical.PropURL, meeting.JoinURL)
		}

		cal.Children = append(cal.Children, event.Component)
		count++
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, err
	}
	return count, nil
}
