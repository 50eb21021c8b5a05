package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/gmail"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

// resolveLabels maps a comma-separated list of label names or IDs to label
// IDs.
func resolveLabels(ctx context.Context, client *gmail.Client, raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := client.ResolveLabelID(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func registerLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all labels with message counts"),
		mcp.WithString("account", mcp.Description(accountDesc)),
	)
	addTool(s, sc, listTool, "labels.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		labels, err := client.ListLabels(ctx)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(labels), nil
	})

	if readOnly {
		return
	}

	createTool := mcp.NewTool("gmail_create_label",
		mcp.WithDescription("Create a user label"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Label name; use '/' for nesting, for example 'Work/Projects'")),
	)
	addTool(s, sc, createTool, "labels.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		label, err := client.CreateLabel(ctx, name)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(label), nil
	})

	deleteTool := mcp.NewTool("gmail_delete_label",
		mcp.WithDescription("Delete a user label by name or ID"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("label", mcp.Required(), mcp.Description("Label name or ID to delete")),
	)
	addTool(s, sc, deleteTool, "labels.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		label, _ := args["label"].(string)
		if label == "" {
			return mcp.NewToolResultError("label is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.ResolveLabelID(ctx, label)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteLabel(ctx, id); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Label %q deleted", label)), nil
	})
}
