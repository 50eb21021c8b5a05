package sheets_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/sheets"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

// gridRangeFromArgs reads the shared range parameters. Row and column bounds
// are zero-based and half-open, matching the Sheets API.
func gridRangeFromArgs(args map[string]any, prefix string) (sheets.GridRange, error) {
	key := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + strings.ToUpper(name[:1]) + name[1:]
	}
	sheetName, _ := args[key("sheetName")].(string)
	if sheetName == "" {
		return sheets.GridRange{}, fmt.Errorf("%s is required", key("sheetName"))
	}
	startRow, ok1 := intArg(args, key("startRow"))
	endRow, ok2 := intArg(args, key("endRow"))
	startCol, ok3 := intArg(args, key("startColumn"))
	endCol, ok4 := intArg(args, key("endColumn"))
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return sheets.GridRange{}, fmt.Errorf("%s, %s, %s, and %s are required",
			key("startRow"), key("endRow"), key("startColumn"), key("endColumn"))
	}
	if endRow <= startRow || endCol <= startCol {
		return sheets.GridRange{}, fmt.Errorf("range bounds must be half-open with end greater than start")
	}
	return sheets.GridRange{
		SheetName:   sheetName,
		StartRow:    startRow,
		EndRow:      endRow,
		StartColumn: startCol,
		EndColumn:   endCol,
	}, nil
}

func withRangeParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	rangeOpts := []mcp.ToolOption{
		mcp.WithString("sheetName", mcp.Required(), mcp.Description("The tab containing the range")),
		mcp.WithNumber("startRow", mcp.Required(), mcp.Description("Zero-based first row of the range")),
		mcp.WithNumber("endRow", mcp.Required(), mcp.Description("Zero-based row after the last row of the range")),
		mcp.WithNumber("startColumn", mcp.Required(), mcp.Description("Zero-based first column of the range")),
		mcp.WithNumber("endColumn", mcp.Required(), mcp.Description("Zero-based column after the last column of the range")),
	}
	return append(rangeOpts, opts...)
}

func registerFormatTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	mergeTool := mcp.NewTool("sheets_merge_cells",
		append([]mcp.ToolOption{
			mcp.WithDescription("Merge a range of cells into one"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams(
			mcp.WithString("mergeType", mcp.Description("MERGE_ALL, MERGE_COLUMNS, or MERGE_ROWS (default: MERGE_ALL)")),
		)...)...,
	)
	addTool(s, sc, mergeTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		mergeType, _ := args["mergeType"].(string)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.MergeCells(ctx, spreadsheetID, r, mergeType); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Cells merged"), nil
	})

	unmergeTool := mcp.NewTool("sheets_unmerge_cells",
		append([]mcp.ToolOption{
			mcp.WithDescription("Split merged cells overlapping a range"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams()...)...,
	)
	addTool(s, sc, unmergeTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.UnmergeCells(ctx, spreadsheetID, r); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Cells unmerged"), nil
	})

	bordersTool := mcp.NewTool("sheets_set_borders",
		append([]mcp.ToolOption{
			mcp.WithDescription("Draw a uniform border around and through a range"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams(
			mcp.WithString("style", mcp.Description("SOLID, SOLID_MEDIUM, SOLID_THICK, DASHED, DOTTED, or DOUBLE (default: SOLID)")),
			mcp.WithString("color", mcp.Description("Border color as #RRGGBB (default: black)")),
		)...)...,
	)
	addTool(s, sc, bordersTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		style, _ := args["style"].(string)
		color, _ := args["color"].(string)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.SetBorders(ctx, spreadsheetID, r, style, color); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Borders set"), nil
	})

	formatTool := mcp.NewTool("sheets_format_cells",
		append([]mcp.ToolOption{
			mcp.WithDescription("Apply formatting to a range. Only the formatting parameters given are changed."),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams(
			mcp.WithBoolean("bold", mcp.Description("Bold text")),
			mcp.WithBoolean("italic", mcp.Description("Italic text")),
			mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
			mcp.WithString("backgroundColor", mcp.Description("Background color as #RRGGBB")),
			mcp.WithString("textColor", mcp.Description("Text color as #RRGGBB")),
			mcp.WithString("numberFormat", mcp.Description("Number format pattern, for example '#,##0.00'")),
			mcp.WithString("horizontalAlign", mcp.Description("LEFT, CENTER, or RIGHT")),
		)...)...,
	)
	addTool(s, sc, formatTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

		var format sheets.CellFormat
		if v, ok := args["bold"].(bool); ok {
			format.Bold = &v
		}
		if v, ok := args["italic"].(bool); ok {
			format.Italic = &v
		}
		if v, ok := intArg(args, "fontSize"); ok {
			format.FontSize = &v
		}
		format.BackgroundColor, _ = args["backgroundColor"].(string)
		format.TextColor, _ = args["textColor"].(string)
		format.NumberFormat, _ = args["numberFormat"].(string)
		format.HorizontalAlign, _ = args["horizontalAlign"].(string)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.FormatCells(ctx, spreadsheetID, r, format); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Formatting applied"), nil
	})

	sortTool := mcp.NewTool("sheets_sort_range",
		append([]mcp.ToolOption{
			mcp.WithDescription("Sort rows in a range by one column"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
		}, withRangeParams(
			mcp.WithString("column", mcp.Required(), mcp.Description("Column letter to sort by, relative to the whole sheet")),
			mcp.WithBoolean("descending", mcp.Description("Sort in descending order (default: false)")),
		)...)...,
	)
	addTool(s, sc, sortTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		column, _ := args["column"].(string)
		if spreadsheetID == "" || column == "" {
			return mcp.NewToolResultError("spreadsheetId and column are required"), nil
		}
		r, err := gridRangeFromArgs(args, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		descending, _ := args["descending"].(bool)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.SortRange(ctx, spreadsheetID, r, column, descending); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Range sorted by column %s", column)), nil
	})

	copyPasteTool := mcp.NewTool("sheets_copy_paste",
		append([]mcp.ToolOption{
			mcp.WithDescription("Copy a source range onto a destination range within the spreadsheet"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("spreadsheetId", mcp.Required(), mcp.Description("The ID of the spreadsheet")),
			mcp.WithString("sourceSheetName", mcp.Required(), mcp.Description("Tab containing the source range")),
			mcp.WithNumber("sourceStartRow", mcp.Required(), mcp.Description("Zero-based first row of the source")),
			mcp.WithNumber("sourceEndRow", mcp.Required(), mcp.Description("Zero-based row after the last source row")),
			mcp.WithNumber("sourceStartColumn", mcp.Required(), mcp.Description("Zero-based first column of the source")),
			mcp.WithNumber("sourceEndColumn", mcp.Required(), mcp.Description("Zero-based column after the last source column")),
			mcp.WithString("destinationSheetName", mcp.Required(), mcp.Description("Tab to paste into")),
			mcp.WithNumber("destinationStartRow", mcp.Required(), mcp.Description("Zero-based first row of the destination")),
			mcp.WithNumber("destinationEndRow", mcp.Required(), mcp.Description("Zero-based row after the last destination row")),
			mcp.WithNumber("destinationStartColumn", mcp.Required(), mcp.Description("Zero-based first column of the destination")),
			mcp.WithNumber("destinationEndColumn", mcp.Required(), mcp.Description("Zero-based column after the last destination column")),
		}, mcp.WithString("pasteType", mcp.Description("PASTE_NORMAL, PASTE_VALUES, or PASTE_FORMAT (default: PASTE_NORMAL)")))...,
	)
	addTool(s, sc, copyPasteTool, "spreadsheets.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		spreadsheetID, _ := args["spreadsheetId"].(string)
		if spreadsheetID == "" {
			return mcp.NewToolResultError("spreadsheetId is required"), nil
		}
		source, err := gridRangeFromArgs(args, "source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		destination, err := gridRangeFromArgs(args, "destination")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		pasteType, _ := args["pasteType"].(string)

		client, err := sheetsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.CopyPaste(ctx, spreadsheetID, source, destination, pasteType); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Range copied"), nil
	})
}
