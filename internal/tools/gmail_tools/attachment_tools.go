package gmail_tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/gmail"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

func registerAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listTool := mcp.NewTool("gmail_list_attachments",
		mcp.WithDescription("List the attachments of a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message")),
	)
	addTool(s, sc, listTool, "messages.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		attachments, err := client.ListAttachments(ctx, messageID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(attachments), nil
	})

	downloadTool := mcp.NewTool("gmail_download_attachment",
		mcp.WithDescription("Download an attachment to a local directory and return the saved path"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message")),
		mcp.WithString("attachmentId", mcp.Required(), mcp.Description("The ID of the attachment")),
		mcp.WithString("saveDir", mcp.Description("Directory to save into (default: the system temp directory)")),
		mcp.WithString("filename", mcp.Description("Filename to save as (default: the attachment's own name)")),
	)
	addTool(s, sc, downloadTool, "attachments.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageID, _ := args["messageId"].(string)
		attachmentID, _ := args["attachmentId"].(string)
		if messageID == "" || attachmentID == "" {
			return mcp.NewToolResultError("messageId and attachmentId are required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		filename, _ := args["filename"].(string)
		if filename == "" {
			attachments, err := client.ListAttachments(ctx, messageID)
			if err != nil {
				return common.ToolError(account, err), nil
			}
			for _, a := range attachments {
				if a.AttachmentID == attachmentID {
					filename = a.Filename
					break
				}
			}
			if filename == "" {
				filename = attachmentID
			}
		}
		filename = gmail.SanitizeFilename(filename)

		saveDir, _ := args["saveDir"].(string)
		if saveDir == "" {
			saveDir = os.TempDir()
		}

		data, err := client.GetAttachment(ctx, messageID, attachmentID)
		if err != nil {
			return common.ToolError(account, err), nil
		}

		path := filepath.Join(saveDir, filename)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save attachment: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Attachment saved to %s (%d bytes)", path, len(data))), nil
	})
}
