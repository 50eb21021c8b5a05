package drive_tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerFileTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createFolderTool := mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a folder, optionally inside a parent folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
		mcp.WithString("parentId", mcp.Description("Parent folder ID")),
	)
	addTool(s, sc, createFolderTool, "files.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		parentID, _ := args["parentId"].(string)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		folder, err := client.CreateFolder(ctx, name, parentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(folder), nil
	})

	uploadTool := mcp.NewTool("drive_upload_file",
		mcp.WithDescription("Upload a local file to Drive"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("localPath", mcp.Required(), mcp.Description("Path of the local file to upload")),
		mcp.WithString("parentId", mcp.Description("Destination folder ID")),
		mcp.WithString("mimeType", mcp.Description("MIME type override (default: inferred from the filename)")),
	)
	addTool(s, sc, uploadTool, "files.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		localPath, _ := args["localPath"].(string)
		if localPath == "" {
			return mcp.NewToolResultError("localPath is required"), nil
		}
		parentID, _ := args["parentId"].(string)
		mimeType, _ := args["mimeType"].(string)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.UploadFile(ctx, localPath, parentID, mimeType)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	downloadTool := mcp.NewTool("drive_download_file",
		mcp.WithDescription("Download a binary file to a local directory and return the saved path"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("saveDir", mcp.Description("Directory to save into (default: the system temp directory)")),
	)
	addTool(s, sc, downloadTool, "files.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		meta, err := client.GetFile(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		data, err := client.DownloadFile(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		saveDir, _ := args["saveDir"].(string)
		if saveDir == "" {
			saveDir = os.TempDir()
		}
		path := filepath.Join(saveDir, filepath.Base(meta.Name))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save file: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("File saved to %s (%d bytes)", path, len(data))), nil
	})

	exportTool := mcp.NewTool("drive_export_file",
		mcp.WithDescription("Export a Google Workspace document (Docs, Sheets, Slides) to a local file in a given format"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the document")),
		mcp.WithString("format", mcp.Required(), mcp.Description("Export format: pdf, docx, txt, html, xlsx, csv, or pptx depending on the document type")),
		mcp.WithString("saveDir", mcp.Description("Directory to save into (default: the system temp directory)")),
	)
	addTool(s, sc, exportTool, "files.export", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		format, _ := args["format"].(string)
		if fileID == "" || format == "" {
			return mcp.NewToolResultError("fileId and format are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		meta, err := client.GetFile(ctx, fileID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		data, _, err := client.ExportFile(ctx, fileID, format)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		saveDir, _ := args["saveDir"].(string)
		if saveDir == "" {
			saveDir = os.TempDir()
		}
		path := filepath.Join(saveDir, fmt.Sprintf("%s.%s", filepath.Base(meta.Name), format))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save export: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Export saved to %s (%d bytes)", path, len(data))), nil
	})

	copyTool := mcp.NewTool("drive_copy_file",
		mcp.WithDescription("Copy a file, optionally renaming it or placing it in a folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file to copy")),
		mcp.WithString("name", mcp.Description("Name for the copy")),
		mcp.WithString("parentId", mcp.Description("Destination folder ID")),
	)
	addTool(s, sc, copyTool, "files.copy", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		if fileID == "" {
			return mcp.NewToolResultError("fileId is required"), nil
		}
		name, _ := args["name"].(string)
		parentID, _ := args["parentId"].(string)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.CopyFile(ctx, fileID, name, parentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	moveTool := mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move a file into a different folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file to move")),
		mcp.WithString("parentId", mcp.Required(), mcp.Description("Destination folder ID")),
	)
	addTool(s, sc, moveTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		parentID, _ := args["parentId"].(string)
		if fileID == "" || parentID == "" {
			return mcp.NewToolResultError("fileId and parentId are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.MoveFile(ctx, fileID, parentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	renameTool := mcp.NewTool("drive_rename_file",
		mcp.WithDescription("Rename a file or folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("name", mcp.Required(), mcp.Description("The new name")),
	)
	addTool(s, sc, renameTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		name, _ := args["name"].(string)
		if fileID == "" || name == "" {
			return mcp.NewToolResultError("fileId and name are required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.RenameFile(ctx, fileID, name)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	descriptionTool := mcp.NewTool("drive_set_description",
		mcp.WithDescription("Set the description of a file or folder"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithString("description", mcp.Required(), mcp.Description("The new description")),
	)
	addTool(s, sc, descriptionTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		description, _ := args["description"].(string)
		if fileID == "" {
			return mcp.NewToolResultError("fileId is required"), nil
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.SetDescription(ctx, fileID, description)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	starTool := mcp.NewTool("drive_star_file",
		mcp.WithDescription("Star or unstar a file"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
		mcp.WithBoolean("starred", mcp.Description("Star when true, unstar when false (default: true)")),
	)
	addTool(s, sc, starTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		fileID, _ := args["fileId"].(string)
		if fileID == "" {
			return mcp.NewToolResultError("fileId is required"), nil
		}
		starred := true
		if v, ok := args["starred"].(bool); ok {
			starred = v
		}

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		file, err := client.SetStarred(ctx, fileID, starred)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(file), nil
	})

	shortcutTool := mcp.NewTool("drive_create_shortcut",
		mcp.WithDescription("Create a shortcut pointing at a target file"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Shortcut name")),
		mcp.WithString("targetId", mcp.Required(), mcp.Description("The ID of the target file")),
		mcp.WithString("parentId", mcp.Description("Folder to create the shortcut in")),
	)
	addTool(s, sc, shortcutTool, "files.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		targetID, _ := args["targetId"].(string)
		if name == "" || targetID == "" {
			return mcp.NewToolResultError("name and targetId are required"), nil
		}
		parentID, _ := args["parentId"].(string)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		shortcut, err := client.CreateShortcut(ctx, name, targetID, parentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(shortcut), nil
	})

	trashTool := mcp.NewTool("drive_trash_file",
		mcp.WithDescription("Move a file to trash"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, trashTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.TrashFile(ctx, fileID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("File %s moved to trash", fileID)), nil
	})

	untrashTool := mcp.NewTool("drive_untrash_file",
		mcp.WithDescription("Restore a file from trash"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, untrashTool, "files.update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.UntrashFile(ctx, fileID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("File %s restored from trash", fileID)), nil
	})

	deleteTool := mcp.NewTool("drive_delete_file_forever",
		mcp.WithDescription("Permanently delete a file, bypassing trash. This cannot be undone."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("fileId", mcp.Required(), mcp.Description("The ID of the file")),
	)
	addTool(s, sc, deleteTool, "files.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		if err := client.DeleteFile(ctx, fileID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("File %s permanently deleted", fileID)), nil
	})

	emptyTrashTool := mcp.NewTool("drive_empty_trash",
		mcp.WithDescription("Permanently delete everything in the account's trash. This cannot be undone."),
		mcp.WithString("account", mcp.Description(accountDesc)),
	)
	addTool(s, sc, emptyTrashTool, "files.emptyTrash", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := driveClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.EmptyTrash(ctx); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Trash emptied"), nil
	})
}
