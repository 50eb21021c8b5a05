package calendar

import (
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

func TestToEvent(t *testing.T) {
	result := toEvent(nil)
	if result.ID != "" {
		t.Errorf("expected empty event for nil input, got %+v", result)
	}

	e := &calendar.Event{
		Id:          "evt-1",
		Summary:     "Planning",
		Description: "Q2 planning session",
		Location:    "Room 4",
		Status:      "confirmed",
		HtmlLink:    "https://calendar.google.com/event?eid=abc",
		Start:       &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00+01:00"},
		End:         &calendar.EventDateTime{DateTime: "2026-03-02T11:00:00+01:00"},
		Attendees: []*calendar.EventAttendee{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
		},
	}
	result = toEvent(e)

	if result.ID != "evt-1" || result.Summary != "Planning" {
		t.Errorf("unexpected conversion: %+v", result)
	}
	if result.AllDay {
		t.Error("timed event must not be all-day")
	}
	if result.Start.IsZero() || result.End.Sub(result.Start) != time.Hour {
		t.Errorf("unexpected start/end: %v %v", result.Start, result.End)
	}
	if len(result.Attendees) != 2 {
		t.Errorf("expected 2 attendees, got %v", result.Attendees)
	}
}

func TestToEventAllDay(t *testing.T) {
	e := &calendar.Event{
		Id:    "evt-2",
		Start: &calendar.EventDateTime{Date: "2026-03-02"},
		End:   &calendar.EventDateTime{Date: "2026-03-03"},
	}
	result := toEvent(e)
	if !result.AllDay {
		t.Error("date-only event must be all-day")
	}
	if result.Start.IsZero() {
		t.Error("all-day start must parse")
	}
}

func TestFromInput(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	e := fromInput(EventInput{
		Summary:   "Sync",
		Start:     start,
		End:       start.Add(30 * time.Minute),
		Attendees: []string{"a@example.com"},
	})
	if e.Summary != "Sync" {
		t.Errorf("unexpected summary %q", e.Summary)
	}
	if e.Start == nil || e.Start.DateTime == "" {
		t.Fatal("start must be set")
	}
	if len(e.Attendees) != 1 || e.Attendees[0].Email != "a@example.com" {
		t.Errorf("unexpected attendees: %+v", e.Attendees)
	}
}
