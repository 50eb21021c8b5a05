package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/gmail"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func gmailClient(sc *server.ServerContext, account string) (*gmail.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceGmail, account, func(ctx context.Context) (*gmail.Client, error) {
		return gmail.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceGmail, operation, sc, handler))
}

func maxResultsArg(args map[string]any) int64 {
	if n, ok := args["maxResults"].(float64); ok {
		return int64(n)
	}
	return 0
}

// RegisterGmailTools registers all Gmail tools with the MCP server. Mutating
// tools are skipped in read-only mode.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerSearchTools(s, sc)
	registerLabelTools(s, sc, readOnly)
	registerAttachmentTools(s, sc)
	if !readOnly {
		registerComposeTools(s, sc)
		registerStateTools(s, sc)
	}
	return nil
}

func registerSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	searchTool := mcp.NewTool("gmail_search_messages",
		mcp.WithDescription("Search messages with a Gmail query, for example 'from:alice is:unread newer_than:7d'"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("query", mcp.Required(), mcp.Description("Gmail search query")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of messages to return (default: 25)")),
	)
	addTool(s, sc, searchTool, "messages.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		query, _ := args["query"].(string)
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		messages, err := client.SearchMessages(ctx, query, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(messages), nil
	})

	getTool := mcp.NewTool("gmail_get_message",
		mcp.WithDescription("Get a message with its decoded body and attachment metadata"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message")),
	)
	addTool(s, sc, getTool, "messages.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageID, _ := args["messageId"].(string)
		if messageID == "" {
			return mcp.NewToolResultError("messageId is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		message, err := client.GetMessage(ctx, messageID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(message), nil
	})

	bodyTool := mcp.NewTool("gmail_get_message_body",
		mcp.WithDescription("Get just the body of a message as text or HTML"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message")),
		mcp.WithString("format", mcp.Description("Body format: 'text' (default) or 'html'")),
	)
	addTool(s, sc, bodyTool, "messages.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageID, _ := args["messageId"].(string)
		if messageID == "" {
			return mcp.NewToolResultError("messageId is required"), nil
		}
		format, _ := args["format"].(string)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		body, err := client.GetMessageBody(ctx, messageID, format)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(body), nil
	})

	listThreadsTool := mcp.NewTool("gmail_list_threads",
		mcp.WithDescription("List conversation threads matching a Gmail query"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("query", mcp.Description("Gmail search query")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of threads to return (default: 25)")),
	)
	addTool(s, sc, listThreadsTool, "threads.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		query, _ := args["query"].(string)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		threads, err := client.ListThreads(ctx, query, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(threads), nil
	})

	getThreadTool := mcp.NewTool("gmail_get_thread",
		mcp.WithDescription("Get a thread with header summaries for each message in the conversation"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("threadId", mcp.Required(), mcp.Description("The ID of the thread")),
	)
	addTool(s, sc, getThreadTool, "threads.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		threadID, _ := args["threadId"].(string)
		if threadID == "" {
			return mcp.NewToolResultError("threadId is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		thread, err := client.GetThread(ctx, threadID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(thread), nil
	})
}
