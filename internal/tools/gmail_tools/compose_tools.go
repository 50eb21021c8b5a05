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

func splitEmails(value string) []string {
	var out []string
	for _, email := range strings.Split(value, ",") {
		if email = strings.TrimSpace(email); email != "" {
			out = append(out, email)
		}
	}
	return out
}

func registerComposeTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	sendTool := mcp.NewTool("gmail_send_message",
		mcp.WithDescription("Compose and send an email message, optionally with a file attachment"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("to", mcp.Required(), mcp.Description("Comma-separated recipient email addresses")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Message subject")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Message body")),
		mcp.WithString("cc", mcp.Description("Comma-separated Cc addresses")),
		mcp.WithString("bcc", mcp.Description("Comma-separated Bcc addresses")),
		mcp.WithBoolean("html", mcp.Description("Send the body as HTML (default: plain text)")),
		mcp.WithString("attachmentPath", mcp.Description("Local file path to attach")),
	)
	addTool(s, sc, sendTool, "messages.send", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		to, _ := args["to"].(string)
		subject, _ := args["subject"].(string)
		body, _ := args["body"].(string)
		if to == "" || subject == "" || body == "" {
			return mcp.NewToolResultError("to, subject, and body are required"), nil
		}

		input := gmail.SendInput{
			To:      splitEmails(to),
			Subject: subject,
			Body:    body,
		}
		if cc, _ := args["cc"].(string); cc != "" {
			input.Cc = splitEmails(cc)
		}
		if bcc, _ := args["bcc"].(string); bcc != "" {
			input.Bcc = splitEmails(bcc)
		}
		input.HTML, _ = args["html"].(bool)
		input.AttachmentPath, _ = args["attachmentPath"].(string)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.SendMessage(ctx, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Message sent, ID: %s", id)), nil
	})

	replyTool := mcp.NewTool("gmail_reply_message",
		mcp.WithDescription("Reply to a message on its thread"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message to reply to")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Reply body")),
		mcp.WithBoolean("replyAll", mcp.Description("Reply to all original recipients (default: false)")),
	)
	addTool(s, sc, replyTool, "messages.send", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageID, _ := args["messageId"].(string)
		body, _ := args["body"].(string)
		if messageID == "" || body == "" {
			return mcp.NewToolResultError("messageId and body are required"), nil
		}
		replyAll, _ := args["replyAll"].(bool)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.ReplyMessage(ctx, messageID, body, replyAll)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Reply sent, ID: %s", id)), nil
	})

	forwardTool := mcp.NewTool("gmail_forward_message",
		mcp.WithDescription("Forward a message to new recipients with an optional note"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("messageId", mcp.Required(), mcp.Description("The ID of the message to forward")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Comma-separated recipient email addresses")),
		mcp.WithString("note", mcp.Description("Note to prepend above the forwarded content")),
	)
	addTool(s, sc, forwardTool, "messages.send", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		messageID, _ := args["messageId"].(string)
		to, _ := args["to"].(string)
		if messageID == "" || to == "" {
			return mcp.NewToolResultError("messageId and to are required"), nil
		}
		note, _ := args["note"].(string)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.ForwardMessage(ctx, messageID, splitEmails(to), note)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Message forwarded, ID: %s", id)), nil
	})

	listDraftsTool := mcp.NewTool("gmail_list_drafts",
		mcp.WithDescription("List draft messages with header summaries"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of drafts to return (default: 25)")),
	)
	addTool(s, sc, listDraftsTool, "drafts.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		drafts, err := client.ListDrafts(ctx, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(drafts), nil
	})

	createDraftTool := mcp.NewTool("gmail_create_draft",
		mcp.WithDescription("Save a composed message as a draft without sending it"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("to", mcp.Required(), mcp.Description("Comma-separated recipient email addresses")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Message subject")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Message body")),
		mcp.WithString("cc", mcp.Description("Comma-separated Cc addresses")),
		mcp.WithBoolean("html", mcp.Description("Compose the body as HTML (default: plain text)")),
	)
	addTool(s, sc, createDraftTool, "drafts.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		to, _ := args["to"].(string)
		subject, _ := args["subject"].(string)
		body, _ := args["body"].(string)
		if to == "" || subject == "" || body == "" {
			return mcp.NewToolResultError("to, subject, and body are required"), nil
		}

		input := gmail.SendInput{
			To:      splitEmails(to),
			Subject: subject,
			Body:    body,
		}
		if cc, _ := args["cc"].(string); cc != "" {
			input.Cc = splitEmails(cc)
		}
		input.HTML, _ = args["html"].(bool)

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.CreateDraft(ctx, input)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Draft created, ID: %s", id)), nil
	})

	sendDraftTool := mcp.NewTool("gmail_send_draft",
		mcp.WithDescription("Send an existing draft"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("draftId", mcp.Required(), mcp.Description("The ID of the draft to send")),
	)
	addTool(s, sc, sendDraftTool, "drafts.send", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		draftID, _ := args["draftId"].(string)
		if draftID == "" {
			return mcp.NewToolResultError("draftId is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		id, err := client.SendDraft(ctx, draftID)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Draft sent, message ID: %s", id)), nil
	})

	deleteDraftTool := mcp.NewTool("gmail_delete_draft",
		mcp.WithDescription("Delete a draft"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("draftId", mcp.Required(), mcp.Description("The ID of the draft to delete")),
	)
	addTool(s, sc, deleteDraftTool, "drafts.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		draftID, _ := args["draftId"].(string)
		if draftID == "" {
			return mcp.NewToolResultError("draftId is required"), nil
		}

		client, err := gmailClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteDraft(ctx, draftID); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Draft %s deleted", draftID)), nil
	})
}
