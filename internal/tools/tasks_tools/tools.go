package tasks_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tasks"
	"github.com/rlarsen/workspace-mcp/internal/tools/batch"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func tasksClient(sc *server.ServerContext, account string) (*tasks.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceTasks, account, func(ctx context.Context) (*tasks.Client, error) {
		return tasks.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceTasks, operation, sc, handler))
}

// RegisterTasksTools registers all Tasks tools with the MCP server. Mutating
// tools are skipped in read-only mode.
func RegisterTasksTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerTaskListTools(s, sc, readOnly)
	registerTaskTools(s, sc, readOnly)
	return nil
}

func registerTaskListTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("tasks_list_task_lists",
		mcp.WithDescription("List all task lists for the authenticated user"),
		mcp.WithString("account", mcp.Description(accountDesc)),
	)
	addTool(s, sc, listTool, "tasklists.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		lists, err := client.ListTaskLists(ctx)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(lists), nil
	})

	getTool := mcp.NewTool("tasks_get_task_list",
		mcp.WithDescription("Get details of a specific task list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list to retrieve")),
	)
	addTool(s, sc, getTool, "tasklists.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		list, err := client.GetTaskList(ctx, taskListID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(list), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("tasks_create_task_list",
		mcp.WithDescription("Create a new task list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new task list")),
	)
	addTool(s, sc, createTool, "tasklists.insert", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		list, err := client.CreateTaskList(ctx, title)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(list), nil
	})

	updateTool := mcp.NewTool("tasks_update_task_list",
		mcp.WithDescription("Rename a task list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list to update")),
		mcp.WithString("title", mcp.Required(), mcp.Description("The new title")),
	)
	addTool(s, sc, updateTool, "tasklists.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		title, _ := args["title"].(string)
		if taskListID == "" || title == "" {
			return mcp.NewToolResultError("taskListId and title are required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		list, err := client.UpdateTaskList(ctx, taskListID, title)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(list), nil
	})

	deleteTool := mcp.NewTool("tasks_delete_task_list",
		mcp.WithDescription("Delete a task list and all its tasks"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list to delete")),
	)
	addTool(s, sc, deleteTool, "tasklists.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteTaskList(ctx, taskListID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Task list %s deleted", taskListID)), nil
	})
}

func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("tasks_list_tasks",
		mcp.WithDescription("List tasks in a task list, optionally including completed tasks or filtering by due date"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithBoolean("showCompleted", mcp.Description("Include completed tasks (default: false)")),
		mcp.WithString("dueMin", mcp.Description("Earliest due date to include, RFC3339")),
		mcp.WithString("dueMax", mcp.Description("Latest due date to include, RFC3339")),
	)
	addTool(s, sc, listTool, "tasks.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}
		showCompleted, _ := args["showCompleted"].(bool)

		var dueMin, dueMax time.Time
		if s, _ := args["dueMin"].(string); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid dueMin: %v", err)), nil
			}
			dueMin = t
		}
		if s, _ := args["dueMax"].(string); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid dueMax: %v", err)), nil
			}
			dueMax = t
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		items, err := client.ListTasks(ctx, taskListID, showCompleted, dueMin, dueMax)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(items), nil
	})

	getTool := mcp.NewTool("tasks_get_task",
		mcp.WithDescription("Get details of a specific task"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task")),
	)
	addTool(s, sc, getTool, "tasks.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		taskID, _ := args["taskId"].(string)
		if taskListID == "" || taskID == "" {
			return mcp.NewToolResultError("taskListId and taskId are required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		task, err := client.GetTask(ctx, taskListID, taskID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(task), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("tasks_create_task",
		mcp.WithDescription("Create a new task in a task list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("title", mcp.Required(), mcp.Description("The task title")),
		mcp.WithString("notes", mcp.Description("Notes describing the task")),
		mcp.WithString("due", mcp.Description("Due date, RFC3339")),
		mcp.WithString("parent", mcp.Description("Parent task ID to create a subtask")),
		mcp.WithString("previous", mcp.Description("Sibling task ID to insert after")),
	)
	addTool(s, sc, createTool, "tasks.insert", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		title, _ := args["title"].(string)
		if taskListID == "" || title == "" {
			return mcp.NewToolResultError("taskListId and title are required"), nil
		}

		input := tasks.TaskInput{Title: title}
		input.Notes, _ = args["notes"].(string)
		input.Parent, _ = args["parent"].(string)
		input.Previous, _ = args["previous"].(string)
		if s, _ := args["due"].(string); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid due: %v", err)), nil
			}
			input.Due = t
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		task, err := client.CreateTask(ctx, taskListID, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(task), nil
	})

	updateTool := mcp.NewTool("tasks_update_task",
		mcp.WithDescription("Update a task's title, notes, status, or due date"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("notes", mcp.Description("New notes")),
		mcp.WithString("status", mcp.Description("New status: needsAction or completed")),
		mcp.WithString("due", mcp.Description("New due date, RFC3339")),
	)
	addTool(s, sc, updateTool, "tasks.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		taskID, _ := args["taskId"].(string)
		if taskListID == "" || taskID == "" {
			return mcp.NewToolResultError("taskListId and taskId are required"), nil
		}

		var input tasks.TaskInput
		input.Title, _ = args["title"].(string)
		input.Notes, _ = args["notes"].(string)
		input.Status, _ = args["status"].(string)
		if s, _ := args["due"].(string); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid due: %v", err)), nil
			}
			input.Due = t
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		task, err := client.UpdateTask(ctx, taskListID, taskID, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(task), nil
	})

	completeTool := mcp.NewTool("tasks_complete_task",
		mcp.WithDescription("Mark one or more tasks as completed. Accepts a single task ID or a JSON array of IDs."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID or JSON array of task IDs")),
	)
	addTool(s, sc, completeTool, "tasks.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}
		taskIDs, err := batch.ParseStringOrArray(args["taskId"], "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		results := batch.ProcessBatch(taskIDs, func(id string) (string, error) {
			if _, err := client.CompleteTask(ctx, taskListID, id); err != nil {
				return "", err
			}
			return "completed", nil
		})
		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	moveTool := mcp.NewTool("tasks_move_task",
		mcp.WithDescription("Move a task under a parent task or after a sibling"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to move")),
		mcp.WithString("parent", mcp.Description("New parent task ID")),
		mcp.WithString("previous", mcp.Description("Sibling task ID to move after")),
	)
	addTool(s, sc, moveTool, "tasks.move", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		taskID, _ := args["taskId"].(string)
		if taskListID == "" || taskID == "" {
			return mcp.NewToolResultError("taskListId and taskId are required"), nil
		}
		parent, _ := args["parent"].(string)
		previous, _ := args["previous"].(string)

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		task, err := client.MoveTask(ctx, taskListID, taskID, parent, previous)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(task), nil
	})

	deleteTool := mcp.NewTool("tasks_delete_task",
		mcp.WithDescription("Delete one or more tasks. Accepts a single task ID or a JSON array of IDs."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID or JSON array of task IDs")),
	)
	addTool(s, sc, deleteTool, "tasks.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}
		taskIDs, err := batch.ParseStringOrArray(args["taskId"], "taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		results := batch.ProcessBatch(taskIDs, func(id string) (string, error) {
			if err := client.DeleteTask(ctx, taskListID, id); err != nil {
				return "", err
			}
			return "deleted", nil
		})
		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	})

	clearTool := mcp.NewTool("tasks_clear_completed",
		mcp.WithDescription("Permanently remove all completed tasks from a task list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list")),
	)
	addTool(s, sc, clearTool, "tasks.clear", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		taskListID, _ := args["taskListId"].(string)
		if taskListID == "" {
			return mcp.NewToolResultError("taskListId is required"), nil
		}

		client, err := tasksClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ClearCompletedTasks(ctx, taskListID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Completed tasks cleared from list %s", taskListID)), nil
	})
}
