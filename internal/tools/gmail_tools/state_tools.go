package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/gmail"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/batch"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

// stateChange maps a message-state tool onto label modifications.
type stateChange struct {
	toolName     string
	description  string
	addLabels    []string
	removeLabels []string
	verb         string
}

var stateChanges = []stateChange{
	{"gmail_star_message", "Star one or more messages", []string{gmail.LabelStarred}, nil, "starred"},
	{"gmail_unstar_message", "Remove the star from one or more messages", nil, []string{gmail.LabelStarred}, "unstarred"},
	{"gmail_mark_read", "Mark one or more messages as read", nil, []string{gmail.LabelUnread}, "marked read"},
	{"gmail_mark_unread", "Mark one or more messages as unread", []string{gmail.LabelUnread}, nil, "marked unread"},
	{"gmail_mark_important", "Mark one or more messages as important", []string{gmail.LabelImportant}, nil, "marked important"},
	{"gmail_mark_unimportant", "Remove the important marker from one or more messages", nil, []string{gmail.LabelImportant}, "marked not important"},
	{"gmail_archive_message", "Archive one or more messages (remove from inbox)", nil, []string{gmail.LabelInbox}, "archived"},
	{"gmail_unarchive_message", "Move one or more messages back to the inbox", []string{gmail.LabelInbox}, nil, "moved to inbox"},
}

func registerStateTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	for _, change := range stateChanges {
		tool := mcp.NewTool(change.toolName,
			mcp.WithDescription(change.description+". Accepts a single message ID or a JSON array of IDs."),
			mcp.WithString("account", mcp.Description(accountDesc)),
			mcp.WithString("messageId", mcp.Required(), mcp.Description("Message ID or JSON array of message IDs")),
		)
		addTool(s, sc, tool, "messages.modify", stateHandler(sc, change))
	}

	trashTool := mcp.NewTool("gmail_trash_message",
		mcp.WithDescription("Move one or more messages to trash. Accepts a single message ID or a JSON array of IDs."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("Message ID or JSON array of message IDs")),
	)
	addTool(s, sc, trashTool, "messages.trash", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return batchMessageOp(ctx, sc, request, "moved to trash", func(client *gmail.Client, id string) error {
			return client.TrashMessage(ctx, id)
		})
	})

	untrashTool := mcp.NewTool("gmail_untrash_message",
		mcp.WithDescription("Restore one or more messages from trash. Accepts a single message ID or a JSON array of IDs."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("Message ID or JSON array of message IDs")),
	)
	addTool(s, sc, untrashTool, "messages.untrash", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return batchMessageOp(ctx, sc, request, "restored from trash", func(client *gmail.Client, id string) error {
			return client.UntrashMessage(ctx, id)
		})
	})

	deleteTool := mcp.NewTool("gmail_delete_message_forever",
		mcp.WithDescription("Permanently delete one or more messages, bypassing trash. This cannot be undone."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("Message ID or JSON array of message IDs")),
	)
	addTool(s, sc, deleteTool, "messages.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return batchMessageOp(ctx, sc, request, "permanently deleted", func(client *gmail.Client, id string) error {
			return client.DeleteMessage(ctx, id)
		})
	})

	modifyTool := mcp.NewTool("gmail_modify_labels",
		mcp.WithDescription("Add and remove labels on one or more messages in a single call"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("Message ID or JSON array of message IDs")),
		mcp.WithString("addLabels", mcp.Description("Comma-separated label names or IDs to add")),
		mcp.WithString("removeLabels", mcp.Description("Comma-separated label names or IDs to remove")),
	)
	addTool(s, sc, modifyTool, "messages.batchModify", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageIDs, err := batch.ParseStringOrArray(args["messageId"], "messageId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		addRaw, _ := args["addLabels"].(string)
		removeRaw, _ := args["removeLabels"].(string)
		if addRaw == "" && removeRaw == "" {
			return mcp.NewToolResultError("at least one of addLabels or removeLabels is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		addLabels, err := resolveLabels(ctx, client, addRaw)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		removeLabels, err := resolveLabels(ctx, client, removeRaw)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		if err := client.BatchModifyMessages(ctx, messageIDs, addLabels, removeLabels); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Labels updated on %d message(s)", len(messageIDs))), nil
	})
}

func stateHandler(sc *server.ServerContext, change stateChange) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return batchMessageOp(ctx, sc, request, change.verb, func(client *gmail.Client, id string) error {
			return client.ModifyMessage(ctx, id, change.addLabels, change.removeLabels)
		})
	}
}

func batchMessageOp(ctx context.Context, sc *server.ServerContext, request mcp.CallToolRequest, verb string, op func(*gmail.Client, string) error) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	messageIDs, err := batch.ParseStringOrArray(args["messageId"], "messageId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := gmailClient(sc, account)
	if err != nil {
		return common.ToolError(account, err), nil
	}

	results := batch.ProcessBatch(messageIDs, func(id string) (string, error) {
		if err := op(client, id); err != nil {
			return "", err
		}
		return verb, nil
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
