package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/store"
	"github.com/borgmon/meetcal/pkg/zoomapi"
)

const syncTimeout = 30 * time.Second

type MeetCal struct {
	app            fyne.App
	config         *models.Config
	configStore    *store.ConfigStore
	meetingStore   *store.MeetingStore
	client         *zoomapi.Client
	calendarWindow *CalendarWindow
	configWindow   *ConfigWindow
	syncTicker     *time.Ticker
	reminderTicker *time.Ticker
}

func main() {
	mc := &MeetCal{
		app:          app.NewWithID("com.borgmon.meetcal"),
		meetingStore: store.NewMeetingStore(),
	}
	mc.configStore = store.NewConfigStore(mc.app)

	if err := mc.initialize(); err != nil {
		log.Fatal(err)
	}

	mc.run()
}

func (mc *MeetCal) initialize() error {
	mc.config = mc.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(mc.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	mc.configStore.Save(mc.config)

	if !mc.config.NeedsConfiguration() {
		mc.client = zoomapi.NewClient(mc.config.ServerURL, mc.config.APIToken)
	}

	mc.calendarWindow = NewCalendarWindow(mc)
	mc.setupSystemTray()
	mc.startBackgroundSync()
	mc.startReminderChecker()

	if mc.config.NeedsConfiguration() {
		mc.showConfigWindow()
	}

	return nil
}

func (mc *MeetCal) run() {
	mc.calendarWindow.Show()
	mc.app.Run()
}

func (mc *MeetCal) showConfigWindow() {
	// If config window already exists and is showing, just bring it to front
	if mc.configWindow != nil && mc.configWindow.window != nil {
		mc.configWindow.window.RequestFocus()
		mc.configWindow.window.Show()
		return
	}

	mc.configWindow = NewConfigWindow(mc.app, mc.config, func(newConfig *models.Config) {
		mc.applyConfig(newConfig)
	})

	mc.configWindow.window.SetOnClosed(func() {
		mc.configWindow = nil
	})

	mc.configWindow.Show()
}

func (mc *MeetCal) applyConfig(newConfig *models.Config) {
	mc.config = newConfig
	mc.configStore.Save(mc.config)

	if mc.config.NeedsConfiguration() {
		mc.client = nil
	} else {
		mc.client = zoomapi.NewClient(mc.config.ServerURL, mc.config.APIToken)
	}

	mc.restartBackgroundSync()

	fyne.Do(func() {
		mc.calendarWindow.Refresh()
	})
}

// syncMeetings fetches the full meeting list and replaces the store's
// copy. Safe to call from any goroutine; the store rejects the result if
// a newer sync started while this one was in flight.
func (mc *MeetCal) syncMeetings() {
	if mc.client == nil {
		log.Println("No meeting backend configured")
		return
	}

	generation := mc.meetingStore.BeginSync()

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	meetings, err := mc.client.ListMeetings(ctx)
	if err != nil {
		log.Printf("Sync failed: %v", err)
		fyne.Do(func() {
			mc.calendarWindow.ShowTransportError(err)
		})
		return
	}

	if !mc.meetingStore.Replace(generation, meetings, mc.config.GetReminderMinutes()) {
		log.Println("Discarding stale sync result")
		return
	}
	log.Printf("Synced %d meetings", len(meetings))

	fyne.Do(func() {
		mc.calendarWindow.Refresh()
	})
	mc.updateSystemTrayMenu()
}

func (mc *MeetCal) startBackgroundSync() {
	// Do initial sync in the background so startup is never blocked
	if !mc.config.NeedsConfiguration() {
		go mc.syncMeetings()
	}

	mc.syncTicker = time.NewTicker(time.Duration(mc.config.UpdateInterval) * time.Minute)
	go func() {
		for range mc.syncTicker.C {
			if !mc.config.NeedsConfiguration() {
				mc.syncMeetings()
			}
		}
	}()
}

func (mc *MeetCal) restartBackgroundSync() {
	if mc.syncTicker != nil {
		mc.syncTicker.Stop()
	}
	mc.startBackgroundSync()
}

func (mc *MeetCal) startReminderChecker() {
	mc.reminderTicker = time.NewTicker(1 * time.Minute)
	go func() {
		for range mc.reminderTicker.C {
			mc.checkReminders()
		}
	}()

	go func() {
		time.Sleep(5 * time.Second)
		mc.checkReminders()
	}()
}

func (mc *MeetCal) checkReminders() {
	if mc.config.NeedsConfiguration() {
		return
	}

	for _, reminder := range mc.meetingStore.RemindersDueNow() {
		mc.showReminder(reminder)
	}
}

func (mc *MeetCal) showReminder(reminder *models.ScheduledReminder) {
	meeting, ok := mc.meetingStore.Get(reminder.MeetingID)
	if !ok {
		log.Printf("Meeting not found for reminder: %s", reminder.MeetingID)
		return
	}

	mc.meetingStore.MarkNotified(reminder.MeetingID, reminder.Offset)

	reminderWindow := NewReminderWindow(
		mc.app,
		meeting,
		mc.config,
		func() {
			log.Printf("Reminder dismissed for meeting: %s", meeting.Topic)
		},
		func() {
			snoozeUntil := time.Now().Add(time.Duration(mc.config.SnoozeTime) * time.Minute)
			mc.meetingStore.Snooze(reminder.MeetingID, reminder.Offset, snoozeUntil)
			log.Printf("Reminder snoozed for meeting: %s until %s", meeting.Topic, snoozeUntil.Format(time.RFC3339))
		},
	)
	reminderWindow.Show()
}

func (mc *MeetCal) quit() {
	if mc.syncTicker != nil {
		mc.syncTicker.Stop()
	}
	if mc.reminderTicker != nil {
		mc.reminderTicker.Stop()
	}
	mc.app.Quit()
}
