package models

// Meeting represents a meeting record fetched from the backend.
// The backend owns the record; the app only holds read-only copies
// for placement and display.
type Meeting struct {
	ID        string `json:"zoom_id"`    // Provider meeting ID
	Topic     string `json:"topic"`      // Meeting title
	StartTime string `json:"start_time"` // Start instant, RFC3339 in UTC, as sent on the wire
	JoinURL   string `json:"join_url"`   // Join link
}
