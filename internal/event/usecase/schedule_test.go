package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quickcal/internal/event"
	"quickcal/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = rt.Host
	return rt.Transport.RoundTrip(req)
}

func newCalendarClient(t *testing.T, handler http.Handler) *gcalendar.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestSchedule(t *testing.T) {
	stubText := `{
		"title": "Weekly sync",
		"start": "2026-01-06T17:00:00",
		"end": "2026-01-06T18:00:00",
		"location": "Room 4",
		"description": null,
		"recurrence": "FREQ=WEEKLY;BYDAY=TU"
	}`
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		var captured map[string]any
		calendar := newCalendarClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/calendar/v3/calendars/primary/events" || r.Method != http.MethodPost {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &captured)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id":"event-123","htmlLink":"https://calendar.google.com/event-uri"}`))
		}))

		uc := New(&mockLogger{}, &stubCompleter{text: stubText}, calendar, "America/New_York")

		out, err := uc.Schedule(context.Background(), testScope, event.ScheduleInput{
			Text: "weekly sync every Tuesday at 5pm in Room 4",
			Now:  now,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.EventID != "event-123" {
			t.Errorf("unexpected event id: %s", out.EventID)
		}
		if out.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected link: %s", out.HtmlLink)
		}
		if out.Event.Title != "Weekly sync" {
			t.Errorf("unexpected title: %s", out.Event.Title)
		}

		startField, _ := captured["start"].(map[string]any)
		if startField["dateTime"] != "2026-01-06T17:00:00" {
			t.Errorf("unexpected start dateTime: %v", startField["dateTime"])
		}
		if startField["timeZone"] != "America/New_York" {
			t.Errorf("unexpected start timeZone: %v", startField["timeZone"])
		}
		if captured["location"] != "Room 4" {
			t.Errorf("unexpected location: %v", captured["location"])
		}
		recurrence, _ := captured["recurrence"].([]any)
		if len(recurrence) != 1 || recurrence[0] != "RRULE:FREQ=WEEKLY;BYDAY=TU" {
			t.Errorf("unexpected recurrence: %v", captured["recurrence"])
		}
	})

	t.Run("parse failure propagates", func(t *testing.T) {
		calendar := newCalendarClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("calendar should not be called when parsing fails")
		}))
		uc := New(&mockLogger{}, &stubCompleter{text: "not json"}, calendar, "UTC")

		_, err := uc.Schedule(context.Background(), testScope, event.ScheduleInput{Text: "x", Now: now})
		if !errors.Is(err, event.ErrInvalidModelOutput) {
			t.Fatalf("expected ErrInvalidModelOutput, got %v", err)
		}
	})

	t.Run("calendar failure", func(t *testing.T) {
		calendar := newCalendarClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		uc := New(&mockLogger{}, &stubCompleter{text: stubText}, calendar, "UTC")

		_, err := uc.Schedule(context.Background(), testScope, event.ScheduleInput{Text: "x", Now: now})
		if err == nil {
			t.Fatal("expected calendar error")
		}
	})
}
