package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet_discovery/internal/models"
	"pet_discovery/internal/service"
)

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

func TestEventsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.SelectionEvent{
		{EventID: "e1", OccurredAt: now, SessionID: "s-1", Type: models.EventSelect, Origin: "list", CompanyID: 2},
		{EventID: "e2", OccurredAt: now.Add(time.Second), SessionID: "s-1", Type: models.EventSelectMiss, Origin: "list", CompanyID: 3},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 99}, EventLog: logs})

	// no token → 401
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/events?from=notatime"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/events?from=2025-08-02&to=2025-08-01"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed range, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/events?session=s-1&type=select_miss&from=2025-08-01&to=2025-08-01"))
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                     `json:"count"`
		Events []models.SelectionEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.last.Type != models.EventSelectMiss || logs.last.SessionID != "s-1" {
		t.Fatalf("filter not forwarded: %+v", logs.last)
	}
	wantTo := time.Date(2025, 8, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.last.To.Equal(wantTo) {
		t.Fatalf("date-only 'to' should be end of day, got %v", logs.last.To)
	}
}

func TestEventsHandler_ServiceError(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: 1},
		EventLog:      &mockEventLog{err: errors.New("db down")},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/events"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := map[string]time.Time{
		"2025-08-27T15:04:05+02:00": time.Date(2025, 8, 27, 13, 4, 5, 0, time.UTC),
		"2025-08-27 15:04:05":       time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC),
		"2025-08-27":                time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := parseQueryTime(in)
		if err != nil || !got.Equal(want) {
			t.Fatalf("parseQueryTime(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseQueryTime("yesterday"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
