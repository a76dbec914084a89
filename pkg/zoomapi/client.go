// Package zoomapi is the HTTP client for the meeting backend, a thin
// proxy in front of the Zoom API. The app only ever sees a meeting's ID,
// topic, start instant and join link; token issuance and refresh are the
// backend's problem.
package zoomapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/borgmon/meetcal/pkg/models"
)

// ErrNotFound is returned when the backend reports no such meeting.
var ErrNotFound = errors.New("meeting not found")

// TransportError wraps a failed backend call. The UI surfaces these as
// transient notifications; retrying is the user's choice, not the
// client's.
type TransportError struct {
	Op     string // "list meetings", "create meeting", ...
	Status int    // HTTP status, 0 if the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the meeting backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL. The token, if
// non-empty, is sent as a bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type meetingPayload struct {
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
}

type listEnvelope struct {
	Data []models.Meeting `json:"data"`
}

type itemEnvelope struct {
	Data models.Meeting `json:"data"`
}

// ListMeetings fetches the full meeting list. The result replaces any
// previously fetched list wholesale.
func (c *Client) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	body, err := c.do(ctx, http.MethodGet, "/meetings", nil, "list meetings")
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Op: "list meetings", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return envelope.Data, nil
}

// GetMeeting fetches a single meeting's detail. A backend 404 maps to
// ErrNotFound.
func (c *Client) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	body, err := c.do(ctx, http.MethodGet, "/meetings/"+id, nil, "get meeting")
	if err != nil {
		return nil, err
	}

	var envelope itemEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Op: "get meeting", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return &envelope.Data, nil
}

// CreateMeeting schedules a new meeting at the given start instant.
func (c *Client) CreateMeeting(ctx context.Context, topic string, start time.Time) (*models.Meeting, error) {
	payload := meetingPayload{Topic: topic, StartTime: start.UTC().Format(time.RFC3339)}
	body, err := c.do(ctx, http.MethodPost, "/meetings", payload, "create meeting")
	if err != nil {
		return nil, err
	}

	var envelope itemEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Op: "create meeting", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return &envelope.Data, nil
}

// UpdateMeeting changes a meeting's topic and start instant.
func (c *Client) UpdateMeeting(ctx context.Context, id, topic string, start time.Time) (*models.Meeting, error) {
	payload := meetingPayload{Topic: topic, StartTime: start.UTC().Format(time.RFC3339)}
	body, err := c.do(ctx, http.MethodPatch, "/meetings/"+id, payload, "update meeting")
	if err != nil {
		return nil, err
	}

	var envelope itemEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Op: "update meeting", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return &envelope.Data, nil
}

// DeleteMeeting removes a meeting.
func (c *Client) DeleteMeeting(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/meetings/"+id, nil, "delete meeting")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any, op string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &TransportError{Op: op, Status: resp.StatusCode}
	}

	return body, nil
}
