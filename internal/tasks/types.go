package tasks

import (
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

// TaskList is a Google Tasks task list.
type TaskList struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Updated time.Time `json:"updated,omitzero"`
}

// Task is a single task.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"` // "needsAction" or "completed"
	Due       time.Time `json:"due,omitzero"`
	Completed time.Time `json:"completed,omitzero"`
	Parent    string    `json:"parent,omitempty"`
	Position  string    `json:"position,omitempty"`
	Links     []Link    `json:"links,omitempty"`
}

// Link is a resource linked from a task.
type Link struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// TaskInput carries the fields for creating or updating a task.
type TaskInput struct {
	Title    string
	Notes    string
	Status   string
	Due      time.Time
	Parent   string
	Previous string
}

func toTaskList(tl *tasks.TaskList) TaskList {
	if tl == nil {
		return TaskList{}
	}
	result := TaskList{
		ID:    tl.Id,
		Title: tl.Title,
	}
	if tl.Updated != "" {
		if t, err := time.Parse(time.RFC3339, tl.Updated); err == nil {
			result.Updated = t
		}
	}
	return result
}

func toTask(t *tasks.Task) Task {
	if t == nil {
		return Task{}
	}
	result := Task{
		ID:       t.Id,
		Title:    t.Title,
		Notes:    t.Notes,
		Status:   t.Status,
		Parent:   t.Parent,
		Position: t.Position,
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			result.Due = due
		}
	}
	if t.Completed != nil && *t.Completed != "" {
		if completed, err := time.Parse(time.RFC3339, *t.Completed); err == nil {
			result.Completed = completed
		}
	}
	for _, link := range t.Links {
		result.Links = append(result.Links, Link{
			Type:        link.Type,
			Description: link.Description,
			Link:        link.Link,
		})
	}
	return result
}
