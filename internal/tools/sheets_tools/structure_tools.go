package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerStructureTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addSheetTool := mcp.NewTool("sheets_add_sheet",
		mcp.WithDescription("Add a tab to a spreadsheet"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new tab")),
	)
	addTool(s, sc, addSheetTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		if spreadsheetID == "" || title == "" {
			return mcp.NewToolResultError("spreadsheetId and title are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AddSheet(ctx, spreadsheetID, title); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q added", title)), nil
	})

	deleteSheetTool := mcp.NewTool("sheets_delete_sheet",
		mcp.WithDescription("Delete a tab from a spreadsheet"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the tab to delete")),
	)
	addTool(s, sc, deleteSheetTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		if spreadsheetID == "" || title == "" {
			return mcp.NewToolResultError("spreadsheetId and title are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteSheet(ctx, spreadsheetID, title); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q deleted", title)), nil
	})

	renameSheetTool := mcp.NewTool("sheets_rename_sheet",
		mcp.WithDescription("Rename a tab"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Current tab title")),
		mcp.WithString("newTitle", mcp.Required(), mcp.Description("New tab title")),
	)
	addTool(s, sc, renameSheetTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		newTitle, _ := args["newTitle"].(string)
		if spreadsheetID == "" || title == "" || newTitle == "" {
			return mcp.NewToolResultError("spreadsheetId, title, and newTitle are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.RenameSheet(ctx, spreadsheetID, title, newTitle); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q renamed to %q", title, newTitle)), nil
	})

	duplicateSheetTool := mcp.NewTool("sheets_duplicate_sheet",
		mcp.WithDescription("Copy a tab within the same spreadsheet"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the tab to copy")),
		mcp.WithString("newTitle", mcp.Required(), mcp.Description("Title for the copy")),
	)
	addTool(s, sc, duplicateSheetTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		newTitle, _ := args["newTitle"].(string)
		if spreadsheetID == "" || title == "" || newTitle == "" {
			return mcp.NewToolResultError("spreadsheetId, title, and newTitle are required"), nil
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DuplicateSheet(ctx, spreadsheetID, title, newTitle); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q duplicated as %q", title, newTitle)), nil
	})

	hideSheetTool := mcp.NewTool("sheets_hide_sheet",
		mcp.WithDescription("Hide or unhide a tab"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the tab")),
		mcp.WithBoolean("hidden", mcp.Description("Hide the tab (default: true). Pass false to unhide.")),
	)
	addTool(s, sc, hideSheetTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		title, _ := args["title"].(string)
		if spreadsheetID == "" || title == "" {
			return mcp.NewToolResultError("spreadsheetId and title are required"), nil
		}
		hidden := true
		if v, ok := args["hidden"].(bool); ok {
			hidden = v
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.HideSheet(ctx, spreadsheetID, title, hidden); err != nil {
			return common.ToolError(account, err), nil
		}
		if hidden {
			return mcp.NewToolResultText(fmt.Sprintf("Tab %q hidden", title)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tab %q unhidden", title)), nil
	})

	insertRowsTool := mcp.NewTool("sheets_insert_rows",
		mcp.WithDescription("Insert empty rows before a row number"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("One-based row number to insert before")),
		mcp.WithNumber("count", mcp.Description("Number of rows to insert (default: 1)")),
	)
	addTool(s, sc, insertRowsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.InsertRows(ctx, spreadsheetID, sheetName, row, count); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d row(s) inserted before row %d", count, row)), nil
	})

	deleteRowsTool := mcp.NewTool("sheets_delete_rows",
		mcp.WithDescription("Delete rows starting at a row number"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("One-based row number to start deleting at")),
		mcp.WithNumber("count", mcp.Description("Number of rows to delete (default: 1)")),
	)
	addTool(s, sc, deleteRowsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteRows(ctx, spreadsheetID, sheetName, row, count); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d row(s) deleted starting at row %d", count, row)), nil
	})

	insertColumnsTool := mcp.NewTool("sheets_insert_columns",
		mcp.WithDescription("Insert empty columns before a column letter"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column letter to insert before, for example 'B'")),
		mcp.WithNumber("count", mcp.Description("Number of columns to insert (default: 1)")),
	)
	addTool(s, sc, insertColumnsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.InsertColumns(ctx, spreadsheetID, sheetName, column, count); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d column(s) inserted before column %s", count, column)), nil
	})

	deleteColumnsTool := mcp.NewTool("sheets_delete_columns",
		mcp.WithDescription("Delete columns starting at a column letter"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column letter to start deleting at")),
		mcp.WithNumber("count", mcp.Description("Number of columns to delete (default: 1)")),
	)
	addTool(s, sc, deleteColumnsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.DeleteColumns(ctx, spreadsheetID, sheetName, column, count); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d column(s) deleted starting at column %s", count, column)), nil
	})

	resizeRowsTool := mcp.NewTool("sheets_resize_rows",
		mcp.WithDescription("Set the pixel height of rows"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("One-based first row to resize")),
		mcp.WithNumber("pixelSize", mcp.Required(), mcp.Description("New row height in pixels")),
		mcp.WithNumber("count", mcp.Description("Number of rows to resize (default: 1)")),
	)
	addTool(s, sc, resizeRowsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		row, okRow := intArg(args, "row")
		pixelSize, okSize := intArg(args, "pixelSize")
		if spreadsheetID == "" || sheetName == "" || !okRow || !okSize {
			return mcp.NewToolResultError("spreadsheetId, sheetName, row, and pixelSize are required"), nil
		}
		count, ok := intArg(args, "count")
		if !ok {
			count = 1
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ResizeRows(ctx, spreadsheetID, sheetName, row, count, pixelSize); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d row(s) resized to %dpx", count, pixelSize)), nil
	})

	resizeColumnsTool := mcp.NewTool("sheets_resize_columns",
		mcp.WithDescription("Set the pixel width of columns"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithString("column", mcp.Required(), mcp.Description("First column letter to resize")),
		mcp.WithNumber("pixelSize", mcp.Required(), mcp.Description("New column width in pixels")),
		mcp.WithNumber("count", mcp.Description("Number of columns to resize (default: 1)")),
	)
	addTool(s, sc, resizeColumnsTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		column, _ := args["column"].(string)
		pixelSize, okSize := intArg(args, "pixelSize")
		if spreadsheetID == "" || sheetName == "" || column == "" || !okSize {
			return mcp.NewToolResultError("spreadsheetId, sheetName, column, and pixelSize are required"), nil
		}
		count, ok := intArg(args, "count")
		if !ok {
			count = 1
		}

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ResizeColumns(ctx, spreadsheetID, sheetName, column, count, pixelSize); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d column(s) resized to %dpx", count, pixelSize)), nil
	})

	freezeTool := mcp.NewTool("sheets_freeze_panes",
		mcp.WithDescription("Freeze the first rows and columns of a tab. Zero unfreezes that dimension."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab to modify")),
		mcp.WithNumber("rows", mcp.Description("Number of rows to freeze (default: 0)")),
		mcp.WithNumber("columns", mcp.Description("Number of columns to freeze (default: 0)")),
	)
	addTool(s, sc, freezeTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		sheetName, _ := args["sheetName"].(string)
		if spreadsheetID == "" || sheetName == "" {
			return mcp.NewToolResultError("spreadsheetId and sheetName are required"), nil
		}
		rows, _ := intArg(args, "rows")
		columns, _ := intArg(args, "columns")

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.FreezePanes(ctx, spreadsheetID, sheetName, rows, columns); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Froze %d row(s) and %d column(s) on %q", rows, columns, sheetName)), nil
	})
}
