package models

import "time"

// ReminderStatus tracks the status of an individual reminder
type ReminderStatus string

const (
	ReminderStatusPending  ReminderStatus = "Pending"  // Reminder is scheduled
	ReminderStatusNotified ReminderStatus = "Notified" // Reminder was shown
	ReminderStatusSnoozed  ReminderStatus = "Snoozed"  // Reminder was snoozed
)

// ScheduledReminder represents a pre-computed reminder for a meeting
type ScheduledReminder struct {
	ID        string         // Unique identifier (UUID)
	MeetingID string         // Meeting this reminder belongs to
	Status    ReminderStatus // Reminder status
	RemindAt  time.Time      // When this reminder should fire
	Offset    int            // negative = minutes before meeting start, positive = minutes from snooze time
}

// RoundToMinute rounds a time down to the nearest minute
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
