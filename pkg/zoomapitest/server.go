// Package zoomapitest provides an in-memory fake of the meeting backend
// for testing. It implements the /meetings endpoints with the same JSON
// envelopes the real backend uses.
package zoomapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/borgmon/meetcal/pkg/models"
)

// Server is a fake meeting backend.
type Server struct {
	*httptest.Server

	mu       sync.RWMutex
	meetings map[string]models.Meeting
	nextID   int

	// FailNext, when set, makes the next request fail with a 500 and
	// then clears itself. Used to exercise transport-error paths.
	FailNext bool
}

// NewServer starts a fake backend. Callers must Close it when done.
func NewServer() *Server {
	s := &Server{
		meetings: make(map[string]models.Meeting),
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/meetings", s.handleCollection)
	mux.HandleFunc("/meetings/", s.handleItem)

	s.Server = httptest.NewServer(mux)
	return s
}

// Seed inserts a meeting directly, bypassing the HTTP surface.
func (s *Server) Seed(meeting models.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[meeting.ID] = meeting
}

// Meeting returns a stored meeting and whether it exists.
func (s *Server) Meeting(id string) (models.Meeting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meeting, ok := s.meetings[id]
	return meeting, ok
}

func (s *Server) failRequested(w http.ResponseWriter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.FailNext {
		return false
	}
	s.FailNext = false
	http.Error(w, "internal error", http.StatusInternalServerError)
	return true
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	if s.failRequested(w) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listMeetings(w)
	case http.MethodPost:
		s.createMeeting(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	if s.failRequested(w) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/meetings/")
	if id == "" {
		http.Error(w, "missing meeting id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getMeeting(w, id)
	case http.MethodPatch, http.MethodPut:
		s.updateMeeting(w, r, id)
	case http.MethodDelete:
		s.deleteMeeting(w, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listMeetings(w http.ResponseWriter) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Meeting, 0, len(s.meetings))
	for _, meeting := range s.meetings {
		list = append(list, meeting)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	writeJSON(w, map[string]any{"data": list})
}

func (s *Server) createMeeting(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Topic     string `json:"topic"`
		StartTime string `json:"start_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.Topic == "" || payload.StartTime == "" {
		http.Error(w, "topic and start_time are required", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(time.RFC3339, payload.StartTime); err != nil {
		http.Error(w, "start_time must be RFC3339", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	meeting := models.Meeting{
		ID:        fmt.Sprintf("8100%06d", s.nextID),
		Topic:     payload.Topic,
		StartTime: payload.StartTime,
		JoinURL:   fmt.Sprintf("https://zoom.example.com/j/8100%06d", s.nextID),
	}
	s.nextID++
	s.meetings[meeting.ID] = meeting
	s.mu.Unlock()

	writeJSON(w, map[string]any{"data": meeting})
}

func (s *Server) getMeeting(w http.ResponseWriter, id string) {
	s.mu.RLock()
	meeting, ok := s.meetings[id]
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"data": meeting})
}

func (s *Server) updateMeeting(w http.ResponseWriter, r *http.Request, id string) {
	var payload struct {
		Topic     string `json:"topic"`
		StartTime string `json:"start_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, ok := s.meetings[id]
	if !ok {
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	}
	if payload.Topic != "" {
		meeting.Topic = payload.Topic
	}
	if payload.StartTime != "" {
		meeting.StartTime = payload.StartTime
	}
	s.meetings[id] = meeting

	writeJSON(w, map[string]any{"data": meeting})
}

func (s *Server) deleteMeeting(w http.ResponseWriter, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[id]; !ok {
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	}
	delete(s.meetings, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
