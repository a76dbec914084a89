package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/meetcal/pkg/models"
)

var storeNow = time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC)

func newTestStore() *MeetingStore {
	ms := NewMeetingStore()
	ms.now = func() time.Time { return storeNow }
	return ms
}

func meetingAt(id, topic string, start time.Time) models.Meeting {
	return models.Meeting{
		ID:        id,
		Topic:     topic,
		StartTime: start.UTC().Format(time.RFC3339),
	}
}

func TestReplaceInstallsList(t *testing.T) {
	ms := newTestStore()

	gen := ms.BeginSync()
	ok := ms.Replace(gen, []models.Meeting{
		meetingAt("2", "Later", storeNow.Add(4*time.Hour)),
		meetingAt("1", "Sooner", storeNow.Add(2*time.Hour)),
	}, nil)
	require.True(t, ok)

	meetings := ms.Meetings()
	require.Len(t, meetings, 2)
	assert.Equal(t, "Sooner", meetings[0].Topic)
	assert.Equal(t, "Later", meetings[1].Topic)
}

func TestReplaceRejectsStaleGeneration(t *testing.T) {
	ms := newTestStore()

	stale := ms.BeginSync()
	fresh := ms.BeginSync()

	ok := ms.Replace(fresh, []models.Meeting{meetingAt("1", "Current", storeNow.Add(time.Hour))}, nil)
	require.True(t, ok)

	ok = ms.Replace(stale, []models.Meeting{meetingAt("9", "Outdated", storeNow.Add(time.Hour))}, nil)
	assert.False(t, ok)

	meetings := ms.Meetings()
	require.Len(t, meetings, 1)
	assert.Equal(t, "Current", meetings[0].Topic)
}

func TestMeetingsSortUnparseableLast(t *testing.T) {
	ms := newTestStore()

	gen := ms.BeginSync()
	ms.Replace(gen, []models.Meeting{
		{ID: "b", Topic: "Broken", StartTime: "garbage"},
		meetingAt("a", "Fine", storeNow.Add(time.Hour)),
	}, nil)

	meetings := ms.Meetings()
	require.Len(t, meetings, 2)
	assert.Equal(t, "Fine", meetings[0].Topic)
	assert.Equal(t, "Broken", meetings[1].Topic)
}

func TestGet(t *testing.T) {
	ms := newTestStore()
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", storeNow.Add(time.Hour))}, nil)

	meeting, ok := ms.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Standup", meeting.Topic)

	_, ok = ms.Get("missing")
	assert.False(t, ok)
}

func TestRemindersDueNow(t *testing.T) {
	ms := newTestStore()

	// Starts in exactly 5 minutes, so the 5-minute reminder is due now.
	start := storeNow.Add(5 * time.Minute)
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", start)}, []int{0, 5})

	due := ms.RemindersDueNow()
	require.Len(t, due, 1)
	assert.Equal(t, "1", due[0].MeetingID)
	assert.Equal(t, -5, due[0].Offset)
}

func TestPastRemindersNotScheduled(t *testing.T) {
	ms := newTestStore()

	// Starts in 3 minutes; the 5-minute offset would already be in the past.
	start := storeNow.Add(3 * time.Minute)
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", start)}, []int{0, 5})

	for _, reminders := range ms.remindersByTime {
		for _, r := range reminders {
			assert.Equal(t, 0, r.Offset)
		}
	}
}

func TestMarkNotifiedSurvivesResync(t *testing.T) {
	ms := newTestStore()
	start := storeNow.Add(5 * time.Minute)
	list := []models.Meeting{meetingAt("1", "Standup", start)}

	ms.Replace(ms.BeginSync(), list, []int{0, 5})
	ms.MarkNotified("1", -5)

	assert.Empty(t, ms.RemindersDueNow())

	// The next sync must not resurrect the dismissed reminder.
	ms.Replace(ms.BeginSync(), list, []int{0, 5})
	assert.Empty(t, ms.RemindersDueNow())
}

func TestRemindersFollowRescheduledMeeting(t *testing.T) {
	ms := newTestStore()

	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", storeNow.Add(time.Hour))}, []int{0})

	// The meeting moves to start right now.
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", storeNow)}, []int{0})

	due := ms.RemindersDueNow()
	require.Len(t, due, 1)
	assert.Equal(t, 0, due[0].Offset)
}

func TestSnoozeSchedulesFollowUp(t *testing.T) {
	ms := newTestStore()
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", storeNow)}, []int{0})

	require.Len(t, ms.RemindersDueNow(), 1)

	until := storeNow.Add(4 * time.Minute)
	ms.Snooze("1", 0, until)

	assert.Empty(t, ms.RemindersDueNow(), "snoozed reminder must not stay due")

	follow, ok := ms.remindersByKey[reminderKey("1", 4)]
	require.True(t, ok)
	assert.Equal(t, models.ReminderStatusPending, follow.Status)
	assert.True(t, follow.RemindAt.Equal(until))
}

func TestRemindersDroppedWithMeeting(t *testing.T) {
	ms := newTestStore()
	ms.Replace(ms.BeginSync(), []models.Meeting{
		meetingAt("1", "Standup", storeNow.Add(time.Hour)),
		meetingAt("2", "Review", storeNow.Add(2*time.Hour)),
	}, []int{0, 5})

	// Meeting 1 disappears from the backend.
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("2", "Review", storeNow.Add(2 * time.Hour))}, []int{0, 5})

	for _, reminder := range ms.remindersByKey {
		assert.NotEqual(t, "1", reminder.MeetingID)
	}
	_, ok := ms.Get("1")
	assert.False(t, ok)
}

func TestRemoveDropsMeetingAndReminders(t *testing.T) {
	ms := newTestStore()
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", storeNow.Add(time.Hour))}, []int{0, 5})

	ms.Remove("1")

	_, ok := ms.Get("1")
	assert.False(t, ok)
	assert.Empty(t, ms.remindersByKey)
	assert.Empty(t, ms.remindersByTime)
}

func TestDroppedOffsetRemovesReminder(t *testing.T) {
	ms := newTestStore()
	start := storeNow.Add(time.Hour)
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", start)}, []int{0, 5, 15})

	// The 15-minute offset is removed from config.
	ms.Replace(ms.BeginSync(), []models.Meeting{meetingAt("1", "Standup", start)}, []int{0, 5})

	_, ok := ms.remindersByKey[reminderKey("1", -15)]
	assert.False(t, ok)
	_, ok = ms.remindersByKey[reminderKey("1", -5)]
	assert.True(t, ok)
}
