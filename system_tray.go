package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
)

func (mc *MeetCal) setupSystemTray() {
	mc.updateSystemTrayMenu()
}

func (mc *MeetCal) updateSystemTrayMenu() {
	desk, ok := mc.app.(desktop.App)
	if !ok {
		return
	}

	zone := mc.config.Location()
	menuItems := []*fyne.MenuItem{}

	// Upcoming meetings section at the top
	upcoming := mc.upcomingTodayMeetings(5)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Today:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, meeting := range upcoming {
			start, err := schedule.ParseInstant(meeting.StartTime)
			if err != nil {
				continue
			}
			itemText := fmt.Sprintf("  %s - %s",
				start.In(zone).Format("3:04 PM"),
				truncateString(meeting.Topic, 35))

			item := fyne.NewMenuItem(itemText, nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open Calendar", func() {
			mc.calendarWindow.Show()
			mc.calendarWindow.window.RequestFocus()
		}),
		fyne.NewMenuItem("Sync Now", func() {
			go mc.syncMeetings()
		}),
		fyne.NewMenuItem("Settings", func() {
			mc.showConfigWindow()
		}),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		mc.quit()
	}))

	menu := fyne.NewMenu("MeetCal", menuItems...)
	desk.SetSystemTrayMenu(menu)
}

// upcomingTodayMeetings returns the next N meetings that start today and
// have not started yet, in start order.
func (mc *MeetCal) upcomingTodayMeetings(limit int) []models.Meeting {
	zone := mc.config.Location()
	now := time.Now()
	today := schedule.DateOf(now, zone)

	upcoming := []models.Meeting{}
	for _, meeting := range mc.meetingStore.Meetings() {
		start, err := schedule.ParseInstant(meeting.StartTime)
		if err != nil {
			continue
		}
		if schedule.IsPast(start, now) {
			continue
		}
		if schedule.DateOf(start, zone).Compare(today) != 0 {
			continue
		}

		upcoming = append(upcoming, meeting)
		if len(upcoming) >= limit {
			break
		}
	}

	return upcoming
}
