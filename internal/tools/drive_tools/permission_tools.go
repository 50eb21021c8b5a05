package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerPermissionTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	shareTool := mcp.NewTool("drive_share_file",
		mcp.WithDescription("Grant a user access to a file"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address to grant access to")),
		mcp.WithString("role", mcp.Required(), mcp.Description("Role: reader, commenter, or writer")),
		mcp.WithBoolean("notify", mcp.Description("Send a notification email (default: false)")),
	)
	addTool(s, sc, shareTool, "permissions.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		email, _ := args["email"].(string)
		role, _ := args["role"].(string)
		if fileID == "" || email == "" || role == "" {
			return mcp.NewToolResultError("fileId, email, and role are required"), nil
		}
		notify, _ := args["notify"].(bool)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		perm, err := client.ShareFile(ctx, fileID, email, role, notify)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(perm), nil
	})

	publicTool := mcp.NewTool("drive_make_public",
		mcp.WithDescription("Grant link access to anyone, optionally discoverable in search"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("role", mcp.Description("Role for link holders: reader (default), commenter, or writer")),
		mcp.WithBoolean("discoverable", mcp.Description("Allow the file to appear in search results (default: false)")),
	)
	addTool(s, sc, publicTool, "permissions.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		if fileID == "" {
			return mcp.NewToolResultError("fileId is required"), nil
		}
		role, _ := args["role"].(string)
		discoverable, _ := args["discoverable"].(bool)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		perm, err := client.MakePublic(ctx, fileID, role, discoverable)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(perm), nil
	})

	listTool := mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List who has access to a file"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, listTool, "permissions.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		perms, err := client.ListPermissions(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(perms), nil
	})

	updateTool := mcp.NewTool("drive_update_permission",
		mcp.WithDescription("Change the role of an existing grant"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("permissionId", mcp.Required(), mcp.Description("The ID of the permission to change")),
		mcp.WithString("role", mcp.Required(), mcp.Description("New role: reader, commenter, or writer")),
	)
	addTool(s, sc, updateTool, "permissions.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		permissionID, _ := args["permissionId"].(string)
		role, _ := args["role"].(string)
		if fileID == "" || permissionID == "" || role == "" {
			return mcp.NewToolResultError("fileId, permissionId, and role are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		perm, err := client.UpdatePermission(ctx, fileID, permissionID, role)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(perm), nil
	})

	unshareTool := mcp.NewTool("drive_unshare_file",
		mcp.WithDescription("Revoke a user's access to a file by email address"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address whose access to revoke")),
	)
	addTool(s, sc, unshareTool, "permissions.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		email, _ := args["email"].(string)
		if fileID == "" || email == "" {
			return mcp.NewToolResultError("fileId and email are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.Unshare(ctx, fileID, email); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Access for %s revoked on file %s", email, fileID)), nil
	})
}
