package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/docs"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func docsClient(sc *server.ServerContext, account string) (*docs.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceDocs, account, func(ctx context.Context) (*docs.Client, error) {
		return docs.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceDocs, operation, sc, handler))
}

func indexArg(args map[string]any, key string) (int64, bool) {
	if n, ok := args[key].(float64); ok {
		return int64(n), true
	}
	return 0, false
}

// RegisterDocsTools registers all Docs tools with the MCP server. Mutating
// tools are skipped in read-only mode.
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	readTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get a document's metadata and its body as plain text"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
	)
	addTool(s, sc, readTool, "documents.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		if documentID == "" {
			return mcp.NewToolResultError("documentId is required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		doc, err := client.GetDocument(ctx, documentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(doc), nil
	})

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create an empty document"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
	)
	addTool(s, sc, createTool, "documents.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		doc, err := client.CreateDocument(ctx, title)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(doc), nil
	})

	appendTool := mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text at the end of a document"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to append")),
	)
	addTool(s, sc, appendTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		text, _ := args["text"].(string)
		if documentID == "" || text == "" {
			return mcp.NewToolResultError("documentId and text are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.AppendText(ctx, documentID, text); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Text appended"), nil
	})

	insertTool := mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text at a character index in a document"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Character index to insert at (1 is the document start)")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to insert")),
	)
	addTool(s, sc, insertTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		text, _ := args["text"].(string)
		index, ok := indexArg(args, "index")
		if documentID == "" || text == "" || !ok {
			return mcp.NewToolResultError("documentId, index, and text are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.InsertText(ctx, documentID, index, text); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Text inserted"), nil
	})

	replaceTool := mcp.NewTool("docs_replace_text",
		mcp.WithDescription("Replace every occurrence of a string in a document"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithString("find", mcp.Required(), mcp.Description("Text to find")),
		mcp.WithString("replace", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithBoolean("matchCase", mcp.Description("Match case exactly (default: false)")),
	)
	addTool(s, sc, replaceTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		find, _ := args["find"].(string)
		if documentID == "" || find == "" {
			return mcp.NewToolResultError("documentId and find are required"), nil
		}
		replace, _ := args["replace"].(string)
		matchCase, _ := args["matchCase"].(bool)

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		changed, err := client.ReplaceText(ctx, documentID, find, replace, matchCase)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d occurrence(s) replaced", changed)), nil
	})

	formatTool := mcp.NewTool("docs_format_text",
		mcp.WithDescription("Apply character formatting (bold, italic, underline, font, size, link) to a range"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Range start index, inclusive")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Range end index, exclusive")),
		mcp.WithBoolean("bold", mcp.Description("Set bold")),
		mcp.WithBoolean("italic", mcp.Description("Set italic")),
		mcp.WithBoolean("underline", mcp.Description("Set underline")),
		mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
		mcp.WithString("fontName", mcp.Description("Font family name")),
		mcp.WithString("linkUrl", mcp.Description("Turn the range into a hyperlink to this URL")),
	)
	addTool(s, sc, formatTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		start, okStart := indexArg(args, "start")
		end, okEnd := indexArg(args, "end")
		if documentID == "" || !okStart || !okEnd {
			return mcp.NewToolResultError("documentId, start, and end are required"), nil
		}

		var format docs.TextFormat
		if v, ok := args["bold"].(bool); ok {
			format.Bold = &v
		}
		if v, ok := args["italic"].(bool); ok {
			format.Italic = &v
		}
		if v, ok := args["underline"].(bool); ok {
			format.Underline = &v
		}
		if v, ok := args["fontSize"].(float64); ok {
			format.FontSize = &v
		}
		format.FontName, _ = args["fontName"].(string)
		format.LinkURL, _ = args["linkUrl"].(string)

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.FormatText(ctx, documentID, start, end, format); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Formatting applied"), nil
	})

	headingTool := mcp.NewTool("docs_apply_heading",
		mcp.WithDescription("Set the paragraph style of a range to a heading level"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Range start index, inclusive")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Range end index, exclusive")),
		mcp.WithString("style", mcp.Required(), mcp.Description("Heading style: normal, title, subtitle, or h1 through h6")),
	)
	addTool(s, sc, headingTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		style, _ := args["style"].(string)
		start, okStart := indexArg(args, "start")
		end, okEnd := indexArg(args, "end")
		if documentID == "" || style == "" || !okStart || !okEnd {
			return mcp.NewToolResultError("documentId, start, end, and style are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.ApplyHeading(ctx, documentID, start, end, style); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Heading applied"), nil
	})

	listTool := mcp.NewTool("docs_create_list",
		mcp.WithDescription("Turn the paragraphs in a range into a bulleted, numbered, or checkbox list"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Range start index, inclusive")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Range end index, exclusive")),
		mcp.WithString("type", mcp.Description("List type: bullet (default), numbered, or checkbox")),
	)
	addTool(s, sc, listTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		start, okStart := indexArg(args, "start")
		end, okEnd := indexArg(args, "end")
		if documentID == "" || !okStart || !okEnd {
			return mcp.NewToolResultError("documentId, start, and end are required"), nil
		}
		listType, _ := args["type"].(string)
		if listType == "" {
			listType = "bullet"
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.CreateList(ctx, documentID, start, end, listType); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("List created"), nil
	})

	tableTool := mcp.NewTool("docs_insert_table",
		mcp.WithDescription("Insert an empty table at a character index"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Character index to insert at")),
		mcp.WithNumber("rows", mcp.Required(), mcp.Description("Number of rows")),
		mcp.WithNumber("columns", mcp.Required(), mcp.Description("Number of columns")),
	)
	addTool(s, sc, tableTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		index, okIndex := indexArg(args, "index")
		rows, okRows := indexArg(args, "rows")
		columns, okCols := indexArg(args, "columns")
		if documentID == "" || !okIndex || !okRows || !okCols {
			return mcp.NewToolResultError("documentId, index, rows, and columns are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.InsertTable(ctx, documentID, index, rows, columns); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%dx%d table inserted", rows, columns)), nil
	})

	tableCellTool := mcp.NewTool("docs_update_table_cell",
		mcp.WithDescription("Replace the text of one table cell"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("table", mcp.Required(), mcp.Description("Zero-based table index in document order")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row index")),
		mcp.WithNumber("column", mcp.Required(), mcp.Description("Zero-based column index")),
		mcp.WithString("text", mcp.Required(), mcp.Description("New cell text; empty clears the cell")),
	)
	addTool(s, sc, tableCellTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		table, okTable := indexArg(args, "table")
		row, okRow := indexArg(args, "row")
		column, okColumn := indexArg(args, "column")
		text, okText := args["text"].(string)
		if documentID == "" || !okTable || !okRow || !okColumn || !okText {
			return mcp.NewToolResultError("documentId, table, row, column, and text are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.WriteTableCell(ctx, documentID, table, row, column, text); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Table cell updated"), nil
	})

	imageTool := mcp.NewTool("docs_insert_image",
		mcp.WithDescription("Insert an image from a public URL at a character index"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Character index to insert at")),
		mcp.WithString("imageUrl", mcp.Required(), mcp.Description("Publicly accessible image URL")),
		mcp.WithNumber("width", mcp.Description("Display width in points")),
		mcp.WithNumber("height", mcp.Description("Display height in points")),
	)
	addTool(s, sc, imageTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		imageURL, _ := args["imageUrl"].(string)
		index, okIndex := indexArg(args, "index")
		if documentID == "" || imageURL == "" || !okIndex {
			return mcp.NewToolResultError("documentId, index, and imageUrl are required"), nil
		}
		width, _ := args["width"].(float64)
		height, _ := args["height"].(float64)

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.InsertImage(ctx, documentID, index, imageURL, width, height); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Image inserted"), nil
	})

	pageBreakTool := mcp.NewTool("docs_insert_page_break",
		mcp.WithDescription("Insert a page break at a character index"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Character index to insert at")),
	)
	addTool(s, sc, pageBreakTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		index, okIndex := indexArg(args, "index")
		if documentID == "" || !okIndex {
			return mcp.NewToolResultError("documentId and index are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.InsertPageBreak(ctx, documentID, index); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Page break inserted"), nil
	})

	bookmarkTool := mcp.NewTool("docs_add_bookmark",
		mcp.WithDescription("Create a named bookmark at a character index for internal linking"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Character index to bookmark")),
		mcp.WithString("bookmarkName", mcp.Required(), mcp.Description("Name of the bookmark")),
	)
	addTool(s, sc, bookmarkTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		index, okIndex := indexArg(args, "index")
		name, _ := args["bookmarkName"].(string)
		if documentID == "" || !okIndex || name == "" {
			return mcp.NewToolResultError("documentId, index, and bookmarkName are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.AddBookmark(ctx, documentID, name, index)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Bookmark %q created (id %s)", name, id)), nil
	})

	deleteRangeTool := mcp.NewTool("docs_delete_range",
		mcp.WithDescription("Delete the content in a character range"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Range start index, inclusive")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Range end index, exclusive")),
	)
	addTool(s, sc, deleteRangeTool, "documents.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		documentID, _ := args["documentId"].(string)
		start, okStart := indexArg(args, "start")
		end, okEnd := indexArg(args, "end")
		if documentID == "" || !okStart || !okEnd {
			return mcp.NewToolResultError("documentId, start, and end are required"), nil
		}

		client, err := docsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteRange(ctx, documentID, start, end); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Range deleted"), nil
	})

	return nil
}
