package store

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/schedule"
)

// MeetingStore holds the most recently fetched meeting list and the
// reminders derived from it. The list is replaced wholesale on every
// successful sync; a generation counter ties each replacement to the
// fetch that produced it so a slow response cannot clobber a newer one.
type MeetingStore struct {
	mu sync.RWMutex

	generation uint64

	// Map of meeting ID to meeting, plus the parsed start instant.
	meetings map[string]*storedMeeting

	// Map of timestamp (minute precision) to reminders firing then.
	remindersByTime map[int64][]*models.ScheduledReminder

	// Map of reminder key to reminder for quick lookup.
	remindersByKey map[string]*models.ScheduledReminder

	now func() time.Time
}

type storedMeeting struct {
	meeting models.Meeting
	start   time.Time
	valid   bool
}

// NewMeetingStore creates an empty MeetingStore.
func NewMeetingStore() *MeetingStore {
	return &MeetingStore{
		meetings:        make(map[string]*storedMeeting),
		remindersByTime: make(map[int64][]*models.ScheduledReminder),
		remindersByKey:  make(map[string]*models.ScheduledReminder),
		now:             time.Now,
	}
}

// reminderKey identifies a reminder by its meeting and offset.
func reminderKey(meetingID string, offset int) string {
	return fmt.Sprintf("%s@%d", meetingID, offset)
}

// BeginSync mints the generation for a fetch that is about to start.
// The result must be passed back to Replace.
func (ms *MeetingStore) BeginSync() uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.generation++
	return ms.generation
}

// Replace installs a freshly fetched meeting list. It returns false and
// changes nothing when a newer sync has started since generation was
// minted. Reminder statuses survive the replacement so a dismissed
// reminder does not come back on the next sync.
func (ms *MeetingStore) Replace(generation uint64, meetings []models.Meeting, reminderMinutes []int) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if generation != ms.generation {
		return false
	}

	seen := make(map[string]bool, len(meetings))
	fresh := make(map[string]*storedMeeting, len(meetings))

	for _, meeting := range meetings {
		seen[meeting.ID] = true

		stored := &storedMeeting{meeting: meeting}
		if start, err := schedule.ParseInstant(meeting.StartTime); err == nil {
			stored.start = start
			stored.valid = true
		} else {
			log.Printf("Meeting %s has unusable start time: %v", meeting.ID, err)
		}
		fresh[meeting.ID] = stored

		if stored.valid {
			ms.reconcileReminders(meeting.ID, stored.start, reminderMinutes)
		}
	}

	// Drop reminders for meetings the backend no longer returns.
	for key, reminder := range ms.remindersByKey {
		if !seen[reminder.MeetingID] {
			ms.removeFromTimeIndex(reminder)
			delete(ms.remindersByKey, key)
		}
	}

	ms.meetings = fresh
	ms.cleanupOldReminders(ms.now().Add(-12 * time.Hour))
	return true
}

// reconcileReminders creates or re-times the pre-start reminders for one
// meeting. Existing reminders keep their status; only their fire time
// moves when the meeting does.
func (ms *MeetingStore) reconcileReminders(meetingID string, start time.Time, reminderMinutes []int) {
	now := ms.now()

	wanted := make(map[int]bool, len(reminderMinutes))
	for _, minutes := range reminderMinutes {
		wanted[minutes] = true

		remindAt := start.Add(-time.Duration(minutes) * time.Minute)
		key := reminderKey(meetingID, -minutes)

		if reminder, exists := ms.remindersByKey[key]; exists {
			if reminder.RemindAt.Equal(remindAt) {
				continue
			}
			ms.removeFromTimeIndex(reminder)
			reminder.RemindAt = remindAt
			ms.addToTimeIndex(reminder)
			continue
		}

		// Never schedule a reminder that is already in the past.
		if remindAt.Before(now) {
			continue
		}

		reminder := &models.ScheduledReminder{
			ID:        uuid.New().String(),
			MeetingID: meetingID,
			Status:    models.ReminderStatusPending,
			RemindAt:  remindAt,
			Offset:    -minutes,
		}
		ms.remindersByKey[key] = reminder
		ms.addToTimeIndex(reminder)
	}

	// Remove pre-start reminders whose offset was dropped from config.
	// Snoozed follow-ups (positive offset) are left alone.
	for key, reminder := range ms.remindersByKey {
		if reminder.MeetingID == meetingID && reminder.Offset <= 0 && !wanted[-reminder.Offset] {
			ms.removeFromTimeIndex(reminder)
			delete(ms.remindersByKey, key)
		}
	}
}

func (ms *MeetingStore) addToTimeIndex(reminder *models.ScheduledReminder) {
	key := models.RoundToMinute(reminder.RemindAt).Unix()
	ms.remindersByTime[key] = append(ms.remindersByTime[key], reminder)
}

func (ms *MeetingStore) removeFromTimeIndex(reminder *models.ScheduledReminder) {
	key := models.RoundToMinute(reminder.RemindAt).Unix()
	reminders := ms.remindersByTime[key]
	for i, r := range reminders {
		if r.ID == reminder.ID {
			ms.remindersByTime[key] = append(reminders[:i], reminders[i+1:]...)
			break
		}
	}
	if len(ms.remindersByTime[key]) == 0 {
		delete(ms.remindersByTime, key)
	}
}

// cleanupOldReminders drops reminders that fired before the cutoff.
func (ms *MeetingStore) cleanupOldReminders(cutoff time.Time) {
	cutoffKey := models.RoundToMinute(cutoff).Unix()

	for timeKey, reminders := range ms.remindersByTime {
		if timeKey >= cutoffKey {
			continue
		}
		for _, reminder := range reminders {
			delete(ms.remindersByKey, reminderKey(reminder.MeetingID, reminder.Offset))
		}
		delete(ms.remindersByTime, timeKey)
	}
}

// Meetings returns all meetings sorted by start instant, earliest first.
// Meetings with unusable start times sort last, by ID.
func (ms *MeetingStore) Meetings() []models.Meeting {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	stored := make([]*storedMeeting, 0, len(ms.meetings))
	for _, m := range ms.meetings {
		stored = append(stored, m)
	}
	sort.Slice(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		switch {
		case a.valid && b.valid:
			if !a.start.Equal(b.start) {
				return a.start.Before(b.start)
			}
			return a.meeting.ID < b.meeting.ID
		case a.valid != b.valid:
			return a.valid
		default:
			return a.meeting.ID < b.meeting.ID
		}
	})

	result := make([]models.Meeting, len(stored))
	for i, m := range stored {
		result[i] = m.meeting
	}
	return result
}

// Get returns a meeting by ID.
func (ms *MeetingStore) Get(id string) (models.Meeting, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	stored, ok := ms.meetings[id]
	if !ok {
		return models.Meeting{}, false
	}
	return stored.meeting, true
}

// RemindersDueNow returns the pending reminders scheduled for the
// current minute.
func (ms *MeetingStore) RemindersDueNow() []*models.ScheduledReminder {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	key := models.RoundToMinute(ms.now()).Unix()

	due := make([]*models.ScheduledReminder, 0)
	for _, reminder := range ms.remindersByTime[key] {
		if reminder.Status == models.ReminderStatusPending {
			due = append(due, reminder)
		}
	}
	return due
}

// MarkNotified records that a reminder was shown to the user.
func (ms *MeetingStore) MarkNotified(meetingID string, offset int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if reminder, ok := ms.remindersByKey[reminderKey(meetingID, offset)]; ok {
		reminder.Status = models.ReminderStatusNotified
	}
}

// Snooze marks a reminder snoozed and schedules a follow-up at the given
// instant. The follow-up carries a positive offset so it never collides
// with the pre-start reminders.
func (ms *MeetingStore) Snooze(meetingID string, offset int, until time.Time) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	reminder, ok := ms.remindersByKey[reminderKey(meetingID, offset)]
	if !ok {
		return
	}
	reminder.Status = models.ReminderStatusSnoozed

	snoozeMinutes := int(until.Sub(ms.now()).Minutes())
	if snoozeMinutes < 1 {
		snoozeMinutes = 1
	}

	followUp := &models.ScheduledReminder{
		ID:        uuid.New().String(),
		MeetingID: meetingID,
		Status:    models.ReminderStatusPending,
		RemindAt:  until,
		Offset:    snoozeMinutes,
	}
	ms.remindersByKey[reminderKey(meetingID, snoozeMinutes)] = followUp
	ms.addToTimeIndex(followUp)
}

// Remove drops a meeting and all its reminders, typically after a local
// delete succeeded and before the next sync confirms it.
func (ms *MeetingStore) Remove(meetingID string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.meetings, meetingID)
	for key, reminder := range ms.remindersByKey {
		if reminder.MeetingID == meetingID {
			ms.removeFromTimeIndex(reminder)
			delete(ms.remindersByKey, key)
		}
	}
}
