package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerRevisionTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listTool := mcp.NewTool("drive_list_revisions",
		mcp.WithDescription("List the saved revisions of a file"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, listTool, "revisions.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		if fileID == "" {
			return mcp.NewToolResultError("fileId is required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		revisions, err := client.ListRevisions(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(revisions), nil
	})

	if readOnly {
		return
	}

	keepTool := mcp.NewTool("drive_keep_revision",
		mcp.WithDescription("Pin or unpin a revision so it is never purged automatically"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("revisionId", mcp.Required(), mcp.Description("The ID of the revision")),
		mcp.WithBoolean("keep", mcp.Description("Pin when true, unpin when false (default: true)")),
	)
	addTool(s, sc, keepTool, "revisions.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		revisionID, _ := args["revisionId"].(string)
		if fileID == "" || revisionID == "" {
			return mcp.NewToolResultError("fileId and revisionId are required"), nil
		}
		keep := true
		if v, ok := args["keep"].(bool); ok {
			keep = v
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.KeepRevision(ctx, fileID, revisionID, keep); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Revision %s keepForever set to %t", revisionID, keep)), nil
	})

	deleteTool := mcp.NewTool("drive_delete_revision",
		mcp.WithDescription("Delete a revision of a file. This cannot be undone."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("revisionId", mcp.Required(), mcp.Description("The ID of the revision")),
	)
	addTool(s, sc, deleteTool, "revisions.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		revisionID, _ := args["revisionId"].(string)
		if fileID == "" || revisionID == "" {
			return mcp.NewToolResultError("fileId and revisionId are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteRevision(ctx, fileID, revisionID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Revision %s deleted", revisionID)), nil
	})
}
