package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/calendar"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func calendarClient(sc *server.ServerContext, account string) (*calendar.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceCalendar, account, func(ctx context.Context) (*calendar.Client, error) {
		return calendar.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceCalendar, operation, sc, handler))
}

func parseTimeArg(args map[string]any, key string) (time.Time, error) {
	s, _ := args[key].(string)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}

// RegisterCalendarTools registers all Calendar tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List events on a calendar within an optional time window"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("calendarId", mcp.Description("Calendar ID (default: 'primary')")),
		mcp.WithString("timeMin", mcp.Description("Earliest event start to include, RFC3339")),
		mcp.WithString("timeMax", mcp.Description("Latest event start to include, RFC3339")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of events to return (default: 25)")),
	)
	addTool(s, sc, listTool, "events.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		calendarID, _ := args["calendarId"].(string)
		timeMin, err := parseTimeArg(args, "timeMin")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		timeMax, err := parseTimeArg(args, "timeMax")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var maxResults int64
		if n, ok := args["maxResults"].(float64); ok {
			maxResults = int64(n)
		}

		client, err := calendarClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		events, err := client.ListEvents(ctx, calendarID, timeMin, timeMax, maxResults)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(events), nil
	})

	getTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific event"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("calendarId", mcp.Description("Calendar ID (default: 'primary')")),
		mcp.WithString("eventId", mcp.Required(), mcp.Description("The ID of the event")),
	)
	addTool(s, sc, getTool, "events.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		eventID, _ := args["eventId"].(string)
		if eventID == "" {
			return mcp.NewToolResultError("eventId is required"), nil
		}
		calendarID, _ := args["calendarId"].(string)

		client, err := calendarClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		event, err := client.GetEvent(ctx, calendarID, eventID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(event), nil
	})

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create an event on a calendar"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("calendarId", mcp.Description("Calendar ID (default: 'primary')")),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("start", mcp.Required(), mcp.Description("Event start, RFC3339")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Event end, RFC3339")),
		mcp.WithString("description", mcp.Description("Event description")),
		mcp.WithString("location", mcp.Description("Event location")),
		mcp.WithString("attendees", mcp.Description("Comma-separated attendee email addresses")),
	)
	addTool(s, sc, createTool, "events.insert", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		summary, _ := args["summary"].(string)
		if summary == "" {
			return mcp.NewToolResultError("summary is required"), nil
		}
		start, err := parseTimeArg(args, "start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := parseTimeArg(args, "end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if start.IsZero() || end.IsZero() {
			return mcp.NewToolResultError("start and end are required"), nil
		}
		if !end.After(start) {
			return mcp.NewToolResultError("end must be after start"), nil
		}

		input := calendar.EventInput{
			Summary: summary,
			Start:   start,
			End:     end,
		}
		input.Description, _ = args["description"].(string)
		input.Location, _ = args["location"].(string)
		if attendees, _ := args["attendees"].(string); attendees != "" {
			for _, email := range strings.Split(attendees, ",") {
				if email = strings.TrimSpace(email); email != "" {
					input.Attendees = append(input.Attendees, email)
				}
			}
		}
		calendarID, _ := args["calendarId"].(string)

		client, err := calendarClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		event, err := client.CreateEvent(ctx, calendarID, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(event), nil
	})

	updateTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update an event's title, times, description, location, or attendees"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("calendarId", mcp.Description("Calendar ID (default: 'primary')")),
		mcp.WithString("eventId", mcp.Required(), mcp.Description("The ID of the event to update")),
		mcp.WithString("summary", mcp.Description("New title")),
		mcp.WithString("start", mcp.Description("New start, RFC3339")),
		mcp.WithString("end", mcp.Description("New end, RFC3339")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("location", mcp.Description("New location")),
		mcp.WithString("attendees", mcp.Description("Comma-separated attendee email addresses, replacing the current set")),
	)
	addTool(s, sc, updateTool, "events.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		eventID, _ := args["eventId"].(string)
		if eventID == "" {
			return mcp.NewToolResultError("eventId is required"), nil
		}
		start, err := parseTimeArg(args, "start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := parseTimeArg(args, "end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := calendar.EventInput{Start: start, End: end}
		input.Summary, _ = args["summary"].(string)
		input.Description, _ = args["description"].(string)
		input.Location, _ = args["location"].(string)
		if attendees, _ := args["attendees"].(string); attendees != "" {
			for _, email := range strings.Split(attendees, ",") {
				if email = strings.TrimSpace(email); email != "" {
					input.Attendees = append(input.Attendees, email)
				}
			}
		}
		calendarID, _ := args["calendarId"].(string)

		client, err := calendarClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		event, err := client.UpdateEvent(ctx, calendarID, eventID, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(event), nil
	})

	deleteTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete an event from a calendar"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("calendarId", mcp.Description("Calendar ID (default: 'primary')")),
		mcp.WithString("eventId", mcp.Required(), mcp.Description("The ID of the event to delete")),
	)
	addTool(s, sc, deleteTool, "events.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		eventID, _ := args["eventId"].(string)
		if eventID == "" {
			return mcp.NewToolResultError("eventId is required"), nil
		}
		calendarID, _ := args["calendarId"].(string)

		client, err := calendarClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteEvent(ctx, calendarID, eventID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted", eventID)), nil
	})

	return nil
}
