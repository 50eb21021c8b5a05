package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/batch"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerFeatureTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	moveTabTool := mcp.NewTool("sheets_move_sheet_tab",
		mcp.WithDescription("Move a tab to a new position"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the tab to move")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position to move the tab to")),
	)
	addTool(s, sc, moveTabTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		index, okIndex := intArg(args, "index")
		if spreadsheetID == "" || title == "" || !okIndex {
			return mcp.NewToolResultError("spreadsheetId, title, and index are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.MoveSheetTab(ctx, spreadsheetID, title, index); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q moved to position %d", title, index)), nil
	})

	copyToTool := mcp.NewTool("sheets_copy_to_spreadsheet",
		mcp.WithDescription("Copy a tab into another spreadsheet"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the source spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the tab to copy")),
		mcp.WithString("destinationSpreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet to copy into")),
	)
	addTool(s, sc, copyToTool, "spreadsheets.sheets.copyTo", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		destinationID, _ := args["destinationSpreadsheetId"].(string)
		if spreadsheetID == "" || title == "" || destinationID == "" {
			return mcp.NewToolResultError("spreadsheetId, title, and destinationSpreadsheetId are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		tab, err := client.CopyToSpreadsheet(ctx, spreadsheetID, title, destinationID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(tab), nil
	})

	autoResizeTool := mcp.NewTool("sheets_auto_resize_columns",
		mcp.WithDescription("Fit columns to their content"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithString("column", mcp.Required(), mcp.Description("First column letter to resize")),
		mcp.WithNumber("count", mcp.Description("Number of columns to resize (default: 1)")),
	)
	addTool(s, sc, autoResizeTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		column, _ := args["column"].(string)
		if spreadsheetID == "" || sheetName == "" || column == "" {
			return mcp.NewToolResultError("spreadsheetId, sheetName, and column are required"), nil
		}
		count, ok := intArg(args, "count")
		if !ok {
			count = 1
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AutoResizeColumns(ctx, spreadsheetID, sheetName, column, count); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d column(s) auto-resized", count)), nil
	})

	hideRowsTool := mcp.NewTool("sheets_hide_rows",
		mcp.WithDescription("Hide or show rows"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("One-based first row to hide")),
		mcp.WithNumber("count", mcp.Description("Number of rows (default: 1)")),
		mcp.WithBoolean("hidden", mcp.Description("Hide the rows (default: true). Pass false to show.")),
	)
	addTool(s, sc, hideRowsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		row, okRow := intArg(args, "row")
		if spreadsheetID == "" || sheetName == "" || !okRow {
			return mcp.NewToolResultError("spreadsheetId, sheetName, and row are required"), nil
		}
		count, ok := intArg(args, "count")
		if !ok {
			count = 1
		}
		hidden := true
		if v, ok := args["hidden"].(bool); ok {
			hidden = v
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.HideRows(ctx, spreadsheetID, sheetName, row, count, hidden); err != nil {
			return common.ToolError(account, err), nil
		}
		if hidden {
			return mcp.NewToolResultText(fmt.Sprintf("%d row(s) hidden", count)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d row(s) shown", count)), nil
	})

	hideColumnsTool := mcp.NewTool("sheets_hide_columns",
		mcp.WithDescription("Hide or show columns"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithString("column", mcp.Required(), mcp.Description("First column letter to hide")),
		mcp.WithNumber("count", mcp.Description("Number of columns (default: 1)")),
		mcp.WithBoolean("hidden", mcp.Description("Hide the columns (default: true). Pass false to show.")),
	)
	addTool(s, sc, hideColumnsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		column, _ := args["column"].(string)
		if spreadsheetID == "" || sheetName == "" || column == "" {
			return mcp.NewToolResultError("spreadsheetId, sheetName, and column are required"), nil
		}
		count, ok := intArg(args, "count")
		if !ok {
			count = 1
		}
		hidden := true
		if v, ok := args["hidden"].(bool); ok {
			hidden = v
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.HideColumns(ctx, spreadsheetID, sheetName, column, count, hidden); err != nil {
			return common.ToolError(account, err), nil
		}
		if hidden {
			return mcp.NewToolResultText(fmt.Sprintf("%d column(s) hidden", count)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d column(s) shown", count)), nil
	})

	namedRangeTool := mcp.NewTool("sheets_create_named_range",
		append([]mcp.ToolOption{
			mcp.WithDescription("Name a range for use in formulas"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Name for the range")),
		}, withRangeParams()...)...,
	)
	addTool(s, sc, namedRangeTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		name, _ := args["name"].(string)
		if spreadsheetID == "" || name == "" {
			return mcp.NewToolResultError("spreadsheetId and name are required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.CreateNamedRange(ctx, spreadsheetID, name, r); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Named range %q created", name)), nil
	})

	validationTool := mcp.NewTool("sheets_add_data_validation",
		append([]mcp.ToolOption{
			mcp.WithDescription("Restrict a range to a dropdown of allowed values"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
			mcp.WithString("values", mcp.Required(), mcp.Description("Allowed value or JSON array of allowed values")),
		}, withRangeParams(
			mcp.WithBoolean("strict", mcp.Description("Reject other input instead of flagging it (default: true)")),
		)...)...,
	)
	addTool(s, sc, validationTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		if spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		values, err := batch.ParseStringOrArray(args["values"], "values")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		strict := true
		if v, ok := args["strict"].(bool); ok {
			strict = v
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AddDataValidation(ctx, spreadsheetID, r, values, strict); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Dropdown validation added with %d option(s)", len(values))), nil
	})

	conditionalTool := mcp.NewTool("sheets_add_conditional_format",
		append([]mcp.ToolOption{
			mcp.WithDescription("Highlight cells in a range that match a condition"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
			mcp.WithString("conditionType", mcp.Required(), mcp.Description("Condition such as NUMBER_GREATER, NUMBER_LESS, or TEXT_CONTAINS")),
		}, withRangeParams(
			mcp.WithString("conditionValue", mcp.Description("Value the condition compares against")),
			mcp.WithString("backgroundColor", mcp.Description("Highlight color as #RRGGBB (default: #00FF00)")),
		)...)...,
	)
	addTool(s, sc, conditionalTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		conditionType, _ := args["conditionType"].(string)
		if spreadsheetID == "" || conditionType == "" {
			return mcp.NewToolResultError("spreadsheetId and conditionType are required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		conditionValue, _ := args["conditionValue"].(string)
		backgroundColor, _ := args["backgroundColor"].(string)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AddConditionalFormat(ctx, spreadsheetID, r, conditionType, conditionValue, backgroundColor); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Conditional format added (%s)", conditionType)), nil
	})

	noteTool := mcp.NewTool("sheets_add_note",
		mcp.WithDescription("Attach a note to a cell"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab containing the cell")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row of the cell")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Zero-based column of the cell")),
		mcp.WithString("note", mcp.Required(), mcp.Description("Note text; empty clears an existing note")),
	)
	addTool(s, sc, noteTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		row, okRow := intArg(args, "row")
		column, okColumn := intArg(args, "column")
		note, okNote := args["note"].(string)
		if spreadsheetID == "" || sheetName == "" || !okRow || !okColumn || !okNote {
			return mcp.NewToolResultError("spreadsheetId, sheetName, row, column, and note are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AddNote(ctx, spreadsheetID, sheetName, row, column, note); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Note set"), nil
	})

	protectTool := mcp.NewTool("sheets_protect_range",
		append([]mcp.ToolOption{
			mcp.WithDescription("Protect a range from edits"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams(
			mcp.WithString("description", mcp.Description("Description shown for the protection")),
			mcp.WithBoolean("warningOnly", mcp.Description("Show a warning instead of blocking edits (default: false)")),
		)...)...,
	)
	addTool(s, sc, protectTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		if spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description, _ := args["description"].(string)
		warningOnly, _ := args["warningOnly"].(bool)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ProtectRange(ctx, spreadsheetID, r, description, warningOnly); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Range protected"), nil
	})

	chartTool := mcp.NewTool("sheets_create_chart",
		append([]mcp.ToolOption{
			mcp.WithDescription("Embed a chart. The first column of the range is the domain; the remaining columns are the series."),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
			mcp.WithString("chartType", mcp.Required(), mcp.Description("COLUMN, BAR, LINE, PIE, AREA, or SCATTER")),
		}, withRangeParams(
			mcp.WithString("title", mcp.Description("Chart title")),
			mcp.WithNumber("anchorRow", mcp.Description("Zero-based row of the cell the chart is anchored at (default: 0)")),
			mcp.WithNumber("anchorColumn", mcp.Description("Zero-based column of the anchor cell (default: 0)")),
		)...)...,
	)
	addTool(s, sc, chartTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		chartType, _ := args["chartType"].(string)
		if spreadsheetID == "" || chartType == "" {
			return mcp.NewToolResultError("spreadsheetId and chartType are required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, _ := args["title"].(string)
		anchorRow, _ := intArg(args, "anchorRow")
		anchorColumn, _ := intArg(args, "anchorColumn")

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.CreateChart(ctx, spreadsheetID, chartType, title, r, anchorRow, anchorColumn); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s chart created", chartType)), nil
	})

	filterTool := mcp.NewTool("sheets_create_filter",
		append([]mcp.ToolOption{
			mcp.WithDescription("Set the basic filter over a range"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams()...)...,
	)
	addTool(s, sc, filterTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		if spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.CreateFilter(ctx, spreadsheetID, r); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Filter created"), nil
	})
}
