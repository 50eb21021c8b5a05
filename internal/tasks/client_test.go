package tasks

import (
	"testing"
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

func TestToTaskList(t *testing.T) {
	result := toTaskList(nil)
	if result.ID != "" {
		t.Errorf("expected empty ID for nil task list, got %s", result.ID)
	}

	tl := &tasks.TaskList{
		Id:      "list-1",
		Title:   "My Tasks",
		Updated: "2026-03-01T14:00:00Z",
	}
	result = toTaskList(tl)

	if result.ID != "list-1" {
		t.Errorf("expected ID 'list-1', got %s", result.ID)
	}
	if result.Title != "My Tasks" {
		t.Errorf("expected title 'My Tasks', got %s", result.Title)
	}
	if result.Updated.IsZero() {
		t.Error("expected non-zero updated time")
	}
}

func TestToTask(t *testing.T) {
	result := toTask(nil)
	if result.ID != "" {
		t.Errorf("expected empty ID for nil task, got %s", result.ID)
	}

	completed := "2026-02-28T10:00:00Z"
	task := &tasks.Task{
		Id:        "task-1",
		Title:     "Write report",
		Notes:     "quarterly numbers",
		Status:    "completed",
		Due:       "2026-03-07T09:00:00Z",
		Completed: &completed,
		Parent:    "parent-1",
		Position:  "00000000000000000001",
		Links: []*tasks.TaskLinks{
			{Type: "email", Description: "Related email", Link: "https://mail.google.com/mail/#all/abc"},
		},
	}
	result = toTask(task)

	if result.ID != "task-1" || result.Title != "Write report" {
		t.Errorf("unexpected task conversion: %+v", result)
	}
	if result.Status != "completed" {
		t.Errorf("expected status 'completed', got %s", result.Status)
	}
	wantDue := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	if !result.Due.Equal(wantDue) {
		t.Errorf("expected due %v, got %v", wantDue, result.Due)
	}
	if result.Completed.IsZero() {
		t.Error("expected completed time to be parsed")
	}
	if len(result.Links) != 1 || result.Links[0].Type != "email" {
		t.Errorf("unexpected links: %+v", result.Links)
	}
}

func TestToTaskBadTimestampsIgnored(t *testing.T) {
	task := &tasks.Task{
		Id:  "task-2",
		Due: "yesterday",
	}
	result := toTask(task)
	if !result.Due.IsZero() {
		t.Errorf("unparseable due date should stay zero, got %v", result.Due)
	}
}
