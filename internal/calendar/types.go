package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// Event is a calendar event.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start,omitzero"`
	End         time.Time `json:"end,omitzero"`
	AllDay      bool      `json:"allDay,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	Status      string    `json:"status,omitempty"`
	HTMLLink    string    `json:"htmlLink,omitempty"`
}

// EventInput carries the fields for creating or updating an event. Times are
// interpreted in the calendar's time zone when no offset is given.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

func toEvent(e *calendar.Event) Event {
	if e == nil {
		return Event{}
	}
	result := Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Status:      e.Status,
		HTMLLink:    e.HtmlLink,
	}
	result.Start, result.AllDay = parseEventTime(e.Start)
	result.End, _ = parseEventTime(e.End)
	for _, a := range e.Attendees {
		if a.Email != "" {
			result.Attendees = append(result.Attendees, a.Email)
		}
	}
	return result
}

// parseEventTime handles both timed (dateTime) and all-day (date) events.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, false
		}
		return time.Time{}, false
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
