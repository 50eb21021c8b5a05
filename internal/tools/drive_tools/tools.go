package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/drive"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func driveClient(sc *server.ServerContext, account string) (*drive.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceDrive, account, func(ctx context.Context) (*drive.Client, error) {
		return drive.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceDrive, operation, sc, handler))
}

func maxResultsArg(args map[string]any) int64 {
	if n, ok := args["maxResults"].(float64); ok {
		return int64(n)
	}
	return 0
}

// RegisterDriveTools registers all Drive tools with the MCP server. Mutating
// tools are skipped in read-only mode.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerListTools(s, sc)
	if !readOnly {
		registerFileTools(s, sc)
		registerPermissionTools(s, sc)
	}
	registerRevisionTools(s, sc, readOnly)
	return nil
}

func registerListTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listTool := mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files, optionally filtered by a Drive query, folder, or shared drive"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("query", mcp.Description("Drive query, for example \"mimeType = 'application/pdf'\"")),
		mcp.WithString("folderId", mcp.Description("Restrict to children of this folder")),
		mcp.WithString("driveId", mcp.Description("Restrict to one shared drive")),
		mcp.WithString("orderBy", mcp.Description("Sort order, for example 'modifiedTime desc' or 'name'")),
		mcp.WithBoolean("trashed", mcp.Description("List trashed files instead of active ones (default: false)")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of files to return (default: 25)")),
	)
	addTool(s, sc, listTool, "files.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		opts := drive.ListOptions{MaxResults: maxResultsArg(args)}
		opts.Query, _ = args["query"].(string)
		opts.FolderID, _ = args["folderId"].(string)
		opts.DriveID, _ = args["driveId"].(string)
		opts.OrderBy, _ = args["orderBy"].(string)
		opts.Trashed, _ = args["trashed"].(bool)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		files, err := client.ListFiles(ctx, opts)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(files), nil
	})

	searchTool := mcp.NewTool("drive_search_files",
		mcp.WithDescription("Search files by name across all drives the account can see"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name substring to search for")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of files to return (default: 25)")),
	)
	addTool(s, sc, searchTool, "files.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		files, err := client.SearchFiles(ctx, name, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(files), nil
	})

	getTool := mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get metadata for a file or folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, getTool, "files.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		file, err := client.GetFile(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	sharedDrivesTool := mcp.NewTool("drive_list_shared_drives",
		mcp.WithDescription("List shared drives the account can access"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of drives to return (default: 25)")),
	)
	addTool(s, sc, sharedDrivesTool, "drives.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		drives, err := client.ListSharedDrives(ctx, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(drives), nil
	})
}
