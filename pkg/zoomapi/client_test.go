package zoomapi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/meetcal/pkg/models"
	"github.com/borgmon/meetcal/pkg/zoomapi"
	"github.com/borgmon/meetcal/pkg/zoomapitest"
)

func newTestClient(t *testing.T) (*zoomapi.Client, *zoomapitest.Server) {
	t.Helper()
	server := zoomapitest.NewServer()
	t.Cleanup(server.Close)
	return zoomapi.NewClient(server.URL, "test-token"), server
}

func TestListMeetings(t *testing.T) {
	client, server := newTestClient(t)
	server.Seed(models.Meeting{ID: "1", Topic: "Standup", StartTime: "2024-03-10T09:00:00Z"})
	server.Seed(models.Meeting{ID: "2", Topic: "Review", StartTime: "2024-03-11T14:00:00Z"})

	meetings, err := client.ListMeetings(context.Background())
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Standup", meetings[0].Topic)
}

func TestListMeetingsEmpty(t *testing.T) {
	client, _ := newTestClient(t)

	meetings, err := client.ListMeetings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, meetings)
}

func TestCreateMeeting(t *testing.T) {
	client, server := newTestClient(t)
	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	created, err := client.CreateMeeting(context.Background(), "Standup", start)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Standup", created.Topic)
	assert.Equal(t, "2024-03-10T09:00:00Z", created.StartTime)
	assert.NotEmpty(t, created.JoinURL)

	stored, ok := server.Meeting(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.Topic, stored.Topic)
}

func TestUpdateMeeting(t *testing.T) {
	client, server := newTestClient(t)
	server.Seed(models.Meeting{ID: "1", Topic: "Standup", StartTime: "2024-03-10T09:00:00Z"})

	start := time.Date(2024, time.March, 10, 10, 30, 0, 0, time.UTC)
	updated, err := client.UpdateMeeting(context.Background(), "1", "Standup v2", start)
	require.NoError(t, err)
	assert.Equal(t, "Standup v2", updated.Topic)
	assert.Equal(t, "2024-03-10T10:30:00Z", updated.StartTime)
}

func TestDeleteMeeting(t *testing.T) {
	client, server := newTestClient(t)
	server.Seed(models.Meeting{ID: "1", Topic: "Standup", StartTime: "2024-03-10T09:00:00Z"})

	require.NoError(t, client.DeleteMeeting(context.Background(), "1"))

	_, ok := server.Meeting("1")
	assert.False(t, ok)
}

func TestGetMeetingNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetMeeting(context.Background(), "missing")
	assert.ErrorIs(t, err, zoomapi.ErrNotFound)
}

func TestDeleteMeetingNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.DeleteMeeting(context.Background(), "missing")
	assert.ErrorIs(t, err, zoomapi.ErrNotFound)
}

func TestTransportErrorCarriesStatus(t *testing.T) {
	client, server := newTestClient(t)
	server.FailNext = true

	_, err := client.ListMeetings(context.Background())
	var terr *zoomapi.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 500, terr.Status)
	assert.Equal(t, "list meetings", terr.Op)
}

func TestUnreachableBackend(t *testing.T) {
	client := zoomapi.NewClient("http://127.0.0.1:1", "")

	_, err := client.ListMeetings(context.Background())
	var terr *zoomapi.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Zero(t, terr.Status)
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListMeetings(ctx)
	assert.Error(t, err)
}
