package forms_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/forms"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func formsClient(sc *server.ServerContext, account string) (*forms.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceForms, account, func(ctx context.Context) (*forms.Client, error) {
		return forms.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceForms, operation, sc, handler))
}

func splitOptions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RegisterFormsTools registers all Forms tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterFormsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getTool := mcp.NewTool("forms_get_form",
		mcp.WithDescription("Get a form with its questions"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
	)
	addTool(s, sc, getTool, "forms.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		if formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		form, err := client.GetForm(ctx, formID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(form), nil
	})

	listResponsesTool := mcp.NewTool("forms_list_responses",
		mcp.WithDescription("List submitted responses to a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
	)
	addTool(s, sc, listResponsesTool, "responses.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		if formID == "" {
			return mcp.NewToolResultError("formId is required"), nil
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		responses, err := client.ListResponses(ctx, formID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if len(responses) == 0 {
			return mcp.NewToolResultText("No responses submitted"), nil
		}
		return common.JSONResult(responses), nil
	})

	getResponseTool := mcp.NewTool("forms_get_response",
		mcp.WithDescription("Get one submitted response to a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
		mcp.WithString("responseId", mcp.Required(), mcp.Description("The ID of the response")),
	)
	addTool(s, sc, getResponseTool, "responses.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		responseID, _ := args["responseId"].(string)
		if formID == "" || responseID == "" {
			return mcp.NewToolResultError("formId and responseId are required"), nil
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		response, err := client.GetResponse(ctx, formID, responseID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(response), nil
	})

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("forms_create_form",
		mcp.WithDescription("Create a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("title", mcp.Required(), mcp.Description("Form title")),
		mcp.WithString("description", mcp.Description("Form description")),
	)
	addTool(s, sc, createTool, "forms.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		description, _ := args["description"].(string)

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		form, err := client.CreateForm(ctx, title, description)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(form), nil
	})

	addQuestionTool := mcp.NewTool("forms_add_question",
		mcp.WithDescription("Add a question to a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Question text")),
		mcp.WithString("type", mcp.Description("short_answer, paragraph, multiple_choice, checkbox, dropdown, scale, date, or time (default: short_answer)")),
		mcp.WithBoolean("required", mcp.Description("Require an answer (default: false)")),
		mcp.WithString("options", mcp.Description("Comma-separated options for choice questions")),
		mcp.WithNumber("low", mcp.Description("Lower bound for scale questions (default: 1)")),
		mcp.WithNumber("high", mcp.Description("Upper bound for scale questions (default: 5)")),
	)
	addTool(s, sc, addQuestionTool, "forms.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		title, _ := args["title"].(string)
		if formID == "" || title == "" {
			return mcp.NewToolResultError("formId and title are required"), nil
		}

		input := forms.QuestionInput{Title: title}
		input.Type, _ = args["type"].(string)
		input.Required, _ = args["required"].(bool)
		if options, _ := args["options"].(string); options != "" {
			input.Options = splitOptions(options)
		}
		if low, ok := args["low"].(float64); ok {
			input.Low = int64(low)
		}
		if high, ok := args["high"].(float64); ok {
			input.High = int64(high)
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		itemID, err := client.AddQuestion(ctx, formID, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Question %s added", itemID)), nil
	})

	deleteQuestionTool := mcp.NewTool("forms_delete_question",
		mcp.WithDescription("Delete a question from a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
		mcp.WithString("itemId", mcp.Required(), mcp.Description("The ID of the item to delete")),
	)
	addTool(s, sc, deleteQuestionTool, "forms.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		itemID, _ := args["itemId"].(string)
		if formID == "" || itemID == "" {
			return mcp.NewToolResultError("formId and itemId are required"), nil
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteQuestion(ctx, formID, itemID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Question %s deleted", itemID)), nil
	})

	quizModeTool := mcp.NewTool("forms_set_quiz_mode",
		mcp.WithDescription("Turn quiz grading on or off for a form"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("formId", mcp.Required(), mcp.Description("The ID of the form")),
		mcp.WithBoolean("isQuiz", mcp.Required(), mcp.Description("Enable quiz mode")),
	)
	addTool(s, sc, quizModeTool, "forms.batchUpdate", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		formID, _ := args["formId"].(string)
		isQuiz, okQuiz := args["isQuiz"].(bool)
		if formID == "" || !okQuiz {
			return mcp.NewToolResultError("formId and isQuiz are required"), nil
		}

		client, err := formsClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.SetQuizMode(ctx, formID, isQuiz); err != nil {
			return common.ToolError(account, err), nil
		}
		if isQuiz {
			return mcp.NewToolResultText("Quiz mode enabled"), nil
		}
		return mcp.NewToolResultText("Quiz mode disabled"), nil
	})

	return nil
}
