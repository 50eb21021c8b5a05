package slides_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/slides"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func slidesClient(sc *server.ServerContext, account string) (*slides.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceSlides, account, func(ctx context.Context) (*slides.Client, error) {
		return slides.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceSlides, operation, sc, handler))
}

func floatArg(args map[string]any, key string, def float64) float64 {
	if n, ok := args[key].(float64); ok {
		return n
	}
	return def
}

// boxFromArgs reads the position and size parameters, all in points.
func boxFromArgs(args map[string]any) slides.Box {
	return slides.Box{
		X:      floatArg(args, "x", 50),
		Y:      floatArg(args, "y", 50),
		Width:  floatArg(args, "width", 400),
		Height: floatArg(args, "height", 100),
	}
}

func boxParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	boxOpts := []mcp.ToolOption{
		mcp.WithNumber("x", mcp.Description("Left offset in points (default: 50)")),
		mcp.WithNumber("y", mcp.Description("Top offset in points (default: 50)")),
		mcp.WithNumber("width", mcp.Description("Width in points (default: 400)")),
		mcp.WithNumber("height", mcp.Description("Height in points (default: 100)")),
	}
	return append(boxOpts, opts...)
}

// RegisterSlidesTools registers all Slides tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterSlidesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getTool := mcp.NewTool("slides_get_presentation",
		mcp.WithDescription("Get a presentation with the text and speaker notes of every slide"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
	)
	addTool(s, sc, getTool, "presentations.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		if presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		p, err := client.GetPresentation(ctx, presentationID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(p), nil
	})

	readSlideTool := mcp.NewTool("slides_read_slide",
		mcp.WithDescription("Read the text and speaker notes of one slide"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide")),
	)
	addTool(s, sc, readSlideTool, "presentations.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		if presentationID == "" || slideID == "" {
			return mcp.NewToolResultError("presentationId and slideId are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		slide, err := client.ReadSlide(ctx, presentationID, slideID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(slide), nil
	})

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("slides_create_presentation",
		mcp.WithDescription("Create a presentation"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("title", mcp.Required(), mcp.Description("Presentation title")),
	)
	addTool(s, sc, createTool, "presentations.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		p, err := client.CreatePresentation(ctx, title)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(p), nil
	})

	addSlideTool := mcp.NewTool("slides_add_slide",
		mcp.WithDescription("Append a slide using a predefined layout"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("layout", mcp.Description("blank, title, title_and_body, title_only, section_header, one_column, or two_columns (default: blank)")),
	)
	addTool(s, sc, addSlideTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		if presentationID == "" {
			return mcp.NewToolResultError("presentationId is required"), nil
		}
		layout, _ := args["layout"].(string)

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		slideID, err := client.AddSlide(ctx, presentationID, layout)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Slide %s added", slideID)), nil
	})

	deleteSlideTool := mcp.NewTool("slides_delete_slide",
		mcp.WithDescription("Delete a slide"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide to delete")),
	)
	addTool(s, sc, deleteSlideTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		if presentationID == "" || slideID == "" {
			return mcp.NewToolResultError("presentationId and slideId are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteSlide(ctx, presentationID, slideID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Slide %s deleted", slideID)), nil
	})

	duplicateSlideTool := mcp.NewTool("slides_duplicate_slide",
		mcp.WithDescription("Copy a slide within the presentation"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide to copy")),
	)
	addTool(s, sc, duplicateSlideTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		if presentationID == "" || slideID == "" {
			return mcp.NewToolResultError("presentationId and slideId are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		newID, err := client.DuplicateSlide(ctx, presentationID, slideID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Slide duplicated as %s", newID)), nil
	})

	moveSlideTool := mcp.NewTool("slides_move_slide",
		mcp.WithDescription("Move a slide to a new position"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide to move")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position to move the slide to")),
	)
	addTool(s, sc, moveSlideTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		index, okIndex := args["index"].(float64)
		if presentationID == "" || slideID == "" || !okIndex {
			return mcp.NewToolResultError("presentationId, slideId, and index are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.MoveSlide(ctx, presentationID, slideID, int64(index)); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Slide %s moved to position %d", slideID, int64(index))), nil
	})

	textBoxTool := mcp.NewTool("slides_insert_text_box",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a text box to a slide"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
			mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text content of the box")),
		}, boxParams()...)...,
	)
	addTool(s, sc, textBoxTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		text, _ := args["text"].(string)
		if presentationID == "" || slideID == "" || text == "" {
			return mcp.NewToolResultError("presentationId, slideId, and text are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		objectID, err := client.InsertTextBox(ctx, presentationID, slideID, text, boxFromArgs(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Text box %s added", objectID)), nil
	})

	shapeTool := mcp.NewTool("slides_create_shape",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add a shape to a slide"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
			mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide")),
			mcp.WithString("shapeType", mcp.Required(), mcp.Description("Shape type, for example RECTANGLE, ELLIPSE, or ROUND_RECTANGLE")),
		}, boxParams()...)...,
	)
	addTool(s, sc, shapeTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		shapeType, _ := args["shapeType"].(string)
		if presentationID == "" || slideID == "" || shapeType == "" {
			return mcp.NewToolResultError("presentationId, slideId, and shapeType are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		objectID, err := client.CreateShape(ctx, presentationID, slideID, shapeType, boxFromArgs(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Shape %s added", objectID)), nil
	})

	imageTool := mcp.NewTool("slides_insert_image",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add an image from a public URL to a slide"),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
			mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide")),
			mcp.WithString("imageUrl", mcp.Required(), mcp.Description("Publicly reachable image URL")),
		}, boxParams()...)...,
	)
	addTool(s, sc, imageTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		imageURL, _ := args["imageUrl"].(string)
		if presentationID == "" || slideID == "" || imageURL == "" {
			return mcp.NewToolResultError("presentationId, slideId, and imageUrl are required"), nil
		}

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		objectID, err := client.InsertImage(ctx, presentationID, slideID, imageURL, boxFromArgs(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Image %s added", objectID)), nil
	})

	replaceTool := mcp.NewTool("slides_replace_text",
		mcp.WithDescription("Replace occurrences of a string across all slides"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("find", mcp.Required(), mcp.Description("Text to find")),
		mcp.WithString("replace", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithBoolean("matchCase", mcp.Description("Match case exactly (default: false)")),
	)
	addTool(s, sc, replaceTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		find, _ := args["find"].(string)
		if presentationID == "" || find == "" {
			return mcp.NewToolResultError("presentationId and find are required"), nil
		}
		replace, _ := args["replace"].(string)
		matchCase, _ := args["matchCase"].(bool)

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		changed, err := client.ReplaceText(ctx, presentationID, find, replace, matchCase)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d occurrence(s) replaced", changed)), nil
	})

	formatTool := mcp.NewTool("slides_format_text",
		mcp.WithDescription("Format a character range within a shape's text. Only the formatting parameters given are changed."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("shapeId", mcp.Required(), mcp.Description("Object ID of the shape or text box")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Range start index, inclusive")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Range end index, exclusive")),
		mcp.WithBoolean("bold", mcp.Description("Bold text")),
		mcp.WithBoolean("italic", mcp.Description("Italic text")),
		mcp.WithBoolean("underline", mcp.Description("Underlined text")),
		mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
		mcp.WithString("color", mcp.Description("Text color as #RRGGBB")),
	)
	addTool(s, sc, formatTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		shapeID, _ := args["shapeId"].(string)
		start, okStart := args["start"].(float64)
		end, okEnd := args["end"].(float64)
		if presentationID == "" || shapeID == "" || !okStart || !okEnd {
			return mcp.NewToolResultError("presentationId, shapeId, start, and end are required"), nil
		}

		var format slides.TextFormat
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
		format.Color, _ = args["color"].(string)

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.FormatText(ctx, presentationID, shapeID, int64(start), int64(end), format); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Text formatted in shape %s", shapeID)), nil
	})

	notesTool := mcp.NewTool("slides_set_notes",
		mcp.WithDescription("Replace the speaker notes of a slide. An empty string clears them."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("presentationId", mcp.Required(), mcp.Description("The ID of the presentation")),
		mcp.WithString("slideId", mcp.Required(), mcp.Description("Object ID of the slide")),
		mcp.WithString("notes", mcp.Required(), mcp.Description("New speaker notes text")),
	)
	addTool(s, sc, notesTool, "presentations.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		presentationID, _ := args["presentationId"].(string)
		slideID, _ := args["slideId"].(string)
		if presentationID == "" || slideID == "" {
			return mcp.NewToolResultError("presentationId and slideId are required"), nil
		}
		notes, _ := args["notes"].(string)

		client, err := slidesClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.SetNotes(ctx, presentationID, slideID, notes); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Speaker notes updated on slide %s", slideID)), nil
	})

	return nil
}
