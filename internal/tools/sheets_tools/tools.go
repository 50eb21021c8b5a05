package sheets_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/sheets"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func sheetsClient(sc *server.ServerContext, account string) (*sheets.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceSheets, account, func(ctx context.Context) (*sheets.Client, error) {
		return sheets.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceSheets, operation, sc, handler))
}

// parseValues converts the tool's 2D values argument into rows of cells.
func parseValues(param any) ([][]any, error) {
	rows, ok := param.([]any)
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("values must be a non-empty array of row arrays")
	}
	out := make([][]any, 0, len(rows))
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("values[%d] must be an array of cells", i)
		}
		out = append(out, cells)
	}
	return out, nil
}

func intArg(args map[string]any, key string) (int64, bool) {
	if n, ok := args[key].(float64); ok {
		return int64(n), true
	}
	return 0, false
}

// RegisterSheetsTools registers all Sheets tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterSheetsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getTool := mcp.NewTool("sheets_get_spreadsheet",
		mcp.WithDescription("Get spreadsheet metadata including its tabs"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
	)
	addTool(s, sc, getTool, "spreadsheets.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		if spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		ss, err := client.GetSpreadsheet(ctx, spreadsheetID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(ss), nil
	})

	readTool := mcp.NewTool("sheets_read_values",
		mcp.WithDescription("Read cell values from an A1 range, for example 'Sheet1!A1:C10'"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("A1 range to read")),
	)
	addTool(s, sc, readTool, "values.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		a1Range, _ := args["range"].(string)
		if spreadsheetID == "" || a1Range == "" {
			return mcp.NewToolResultError("spreadsheetId and range are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		values, err := client.ReadValues(ctx, spreadsheetID, a1Range)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(values), nil
	})

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a spreadsheet, optionally with named tabs"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("title", mcp.Required(), mcp.Description("Spreadsheet title")),
		mcp.WithString("tabs", mcp.Description("Comma-separated tab names")),
	)
	addTool(s, sc, createTool, "spreadsheets.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		var tabNames []string
		if tabs, _ := args["tabs"].(string); tabs != "" {
			for _, name := range strings.Split(tabs, ",") {
				if name = strings.TrimSpace(name); name != "" {
					tabNames = append(tabNames, name)
				}
			}
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		ss, err := client.CreateSpreadsheet(ctx, title, tabNames)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(ss), nil
	})

	writeTool := mcp.NewTool("sheets_write_values",
		mcp.WithDescription("Overwrite cell values starting at the top left of an A1 range. Values is an array of row arrays."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("A1 range to write")),
		mcp.WithArray("values", mcp.Required(), mcp.Description("Array of row arrays, for example [[\"Name\",\"Total\"],[\"Q1\",1200]]")),
	)
	addTool(s, sc, writeTool, "values.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		a1Range, _ := args["range"].(string)
		if spreadsheetID == "" || a1Range == "" {
			return mcp.NewToolResultError("spreadsheetId and range are required"), nil
		}
		values, err := parseValues(args["values"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		updated, err := client.WriteValues(ctx, spreadsheetID, a1Range, values)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d cell(s) updated", updated)), nil
	})

	appendTool := mcp.NewTool("sheets_append_values",
		mcp.WithDescription("Append rows after the last row of data in a sheet. Values is an array of row arrays."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("A1 range identifying the sheet and region, for example 'Sheet1!A:C'")),
		mcp.WithArray("values", mcp.Required(), mcp.Description("Array of row arrays to append")),
	)
	addTool(s, sc, appendTool, "values.append", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		a1Range, _ := args["range"].(string)
		if spreadsheetID == "" || a1Range == "" {
			return mcp.NewToolResultError("spreadsheetId and range are required"), nil
		}
		values, err := parseValues(args["values"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		appended, err := client.AppendValues(ctx, spreadsheetID, a1Range, values)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d cell(s) appended", appended)), nil
	})

	clearTool := mcp.NewTool("sheets_clear_values",
		mcp.WithDescription("Clear cell values in an A1 range, leaving formatting intact"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("range", mcp.Required(), mcp.Description("A1 range to clear")),
	)
	addTool(s, sc, clearTool, "values.clear", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		a1Range, _ := args["range"].(string)
		if spreadsheetID == "" || a1Range == "" {
			return mcp.NewToolResultError("spreadsheetId and range are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ClearValues(ctx, spreadsheetID, a1Range); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Range %s cleared", a1Range)), nil
	})

	findReplaceTool := mcp.NewTool("sheets_find_replace",
		mcp.WithDescription("Replace occurrences of a string across the spreadsheet or one tab"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("find", mcp.Required(), mcp.Description("Text to find")),
		mcp.WithString("replace", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithString("sheetName", mcp.Description("Restrict to this tab (default: all tabs)")),
		mcp.WithBoolean("matchCase", mcp.Description("Match case exactly (default: false)")),
	)
	addTool(s, sc, findReplaceTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		find, _ := args["find"].(string)
		if spreadsheetID == "" || find == "" {
			return mcp.NewToolResultError("spreadsheetId and find are required"), nil
		}
		replace, _ := args["replace"].(string)
		sheetName, _ := args["sheetName"].(string)
		matchCase, _ := args["matchCase"].(bool)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		changed, err := client.FindReplace(ctx, spreadsheetID, find, replace, sheetName, matchCase)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d occurrence(s) replaced", changed)), nil
	})

	registerStructureTools(s, sc)
	registerFormatTools(s, sc)
	registerFeatureTools(s, sc)
	return nil
}
