package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/meetcal/pkg/models"
)

func TestWriteCalendar(t *testing.T) {
	meetings := []models.Meeting{
		{ID: "8100000001", Topic: "Standup", StartTime: "2024-03-10T09:00:00Z", JoinURL: "https://zoom.example.com/j/8100000001"},
		{ID: "8100000002", Topic: "Review", StartTime: "2024-03-11T14:00:00Z"},
	}

	var buf bytes.Buffer
	count, err := writeCalendar(&buf, meetings)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "SUMMARY:Standup")
	assert.Contains(t, out, "SUMMARY:Review")
	assert.Contains(t, out, "UID:8100000001@meetcal")
	assert.Contains(t, out, "DTSTART")
}

func TestWriteCalendarSkipsUnparseableStart(t *testing.T) {
	meetings := []models.Meeting{
		{ID: "1", Topic: "Fine", StartTime: "2024-03-10T09:00:00Z"},
		{ID: "2", Topic: "Broken", StartTime: "garbage"},
	}

	var buf bytes.Buffer
	count, err := writeCalendar(&buf, meetings)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, buf.String(), "Broken")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "a long ...", truncateString("a long meeting topic", 10))
}
