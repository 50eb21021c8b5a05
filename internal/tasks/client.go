package tasks

import (
	"context"
	"fmt"
	"time"

	tasks "google.golang.org/api/tasks/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Google Tasks service for one account.
type Client struct {
	svc     *tasks.Service
	account string
}

// NewClient creates a Tasks client whose requests authenticate through the
// credential manager for the given account.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := tasks.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Tasks service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// ListTaskLists lists all task lists.
func (c *Client) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	result, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	var taskLists []TaskList
	for _, tl := range result.Items {
		taskLists = append(taskLists, toTaskList(tl))
	}
	return taskLists, nil
}

// GetTaskList retrieves one task list by ID.
func (c *Client) GetTaskList(ctx context.Context, taskListID string) (*TaskList, error) {
	tl, err := c.svc.Tasklists.Get(taskListID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get task list: %w", err)
	}
	result := toTaskList(tl)
	return &result, nil
}

// CreateTaskList creates a task list.
func (c *Client) CreateTaskList(ctx context.Context, title string) (*TaskList, error) {
	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create task list: %w", err)
	}
	result := toTaskList(created)
	return &result, nil
}

// UpdateTaskList renames a task list.
func (c *Client) UpdateTaskList(ctx context.Context, taskListID, title string) (*TaskList, error) {
	updated, err := c.svc.Tasklists.Update(taskListID, &tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update task list: %w", err)
	}
	result := toTaskList(updated)
	return &result, nil
}

// DeleteTaskList deletes a task list.
func (c *Client) DeleteTaskList(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasklists.Delete(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}
	return nil
}

// ListTasks lists tasks in a list, optionally including completed tasks and
// filtering by due-date window.
func (c *Client) ListTasks(ctx context.Context, taskListID string, showCompleted bool, dueMin, dueMax time.Time) ([]Task, error) {
	call := c.svc.Tasks.List(taskListID)
	if showCompleted {
		call = call.ShowCompleted(true).ShowHidden(true)
	}
	if !dueMin.IsZero() {
		call = call.DueMin(dueMin.Format(time.RFC3339))
	}
	if !dueMax.IsZero() {
		call = call.DueMax(dueMax.Format(time.RFC3339))
	}

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var taskList []Task
	for _, t := range result.Items {
		taskList = append(taskList, toTask(t))
	}
	return taskList, nil
}

// GetTask retrieves one task by ID.
func (c *Client) GetTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	t, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	result := toTask(t)
	return &result, nil
}

// CreateTask creates a task, optionally positioned under a parent or after a
// previous sibling.
func (c *Client) CreateTask(ctx context.Context, taskListID string, input TaskInput) (*Task, error) {
	t := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Status: input.Status,
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	call := c.svc.Tasks.Insert(taskListID, t)
	if input.Parent != "" {
		call = call.Parent(input.Parent)
	}
	if input.Previous != "" {
		call = call.Previous(input.Previous)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	result := toTask(created)
	return &result, nil
}

// UpdateTask patches the given fields of an existing task. Empty fields keep
// their current value.
func (c *Client) UpdateTask(ctx context.Context, taskListID, taskID string, input TaskInput) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get existing task: %w", err)
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Notes != "" {
		existing.Notes = input.Notes
	}
	if input.Status != "" {
		existing.Status = input.Status
	}
	if !input.Due.IsZero() {
		existing.Due = input.Due.Format(time.RFC3339)
	}

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	result := toTask(updated)
	return &result, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskListID, taskID string) error {
	if err := c.svc.Tasks.Delete(taskListID, taskID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	existing.Status = "completed"
	completedTime := time.Now().Format(time.RFC3339)
	existing.Completed = &completedTime

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	result := toTask(updated)
	return &result, nil
}

// MoveTask repositions a task under a parent or after a previous sibling.
func (c *Client) MoveTask(ctx context.Context, taskListID, taskID, parent, previous string) (*Task, error) {
	call := c.svc.Tasks.Move(taskListID, taskID)
	if parent != "" {
		call = call.Parent(parent)
	}
	if previous != "" {
		call = call.Previous(previous)
	}

	moved, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}
	result := toTask(moved)
	return &result, nil
}

// ClearCompletedTasks removes all completed tasks from a list.
func (c *Client) ClearCompletedTasks(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasks.Clear(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear completed tasks: %w", err)
	}
	return nil
}
