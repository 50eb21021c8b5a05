package calendar

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Google Calendar service for one account.
type Client struct {
	svc     *calendar.Service
	account string
}

// NewClient creates a Calendar client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := calendar.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Calendar service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// ListEvents lists events on a calendar within a time window, expanded to
// single instances and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int64) ([]Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	call := c.svc.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime")
	if !timeMin.IsZero() {
		call = call.TimeMin(timeMin.Format(time.RFC3339))
	}
	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var events []Event
	for _, e := range result.Items {
		events = append(events, toEvent(e))
	}
	return events, nil
}

// GetEvent retrieves one event by ID.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	e, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	result := toEvent(e)
	return &result, nil
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	created, err := c.svc.Events.Insert(calendarID, fromInput(input)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	result := toEvent(created)
	return &result, nil
}

// UpdateEvent patches the given fields of an event. Zero fields keep their
// current value.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, input EventInput) (*Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	existing, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get existing event: %w", err)
	}

	if input.Summary != "" {
		existing.Summary = input.Summary
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Location != "" {
		existing.Location = input.Location
	}
	if !input.Start.IsZero() {
		existing.Start = &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339)}
	}
	if !input.End.IsZero() {
		existing.End = &calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339)}
	}
	if input.Attendees != nil {
		existing.Attendees = toAttendees(input.Attendees)
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	result := toEvent(updated)
	return &result, nil
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func fromInput(input EventInput) *calendar.Event {
	e := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Attendees:   toAttendees(input.Attendees),
	}
	if !input.Start.IsZero() {
		e.Start = &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339)}
	}
	if !input.End.IsZero() {
		e.End = &calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339)}
	}
	return e
}

func toAttendees(emails []string) []*calendar.EventAttendee {
	var attendees []*calendar.EventAttendee
	for _, email := range emails {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}
	return attendees
}
