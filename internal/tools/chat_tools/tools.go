package chat_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/chat"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

func chatClient(sc *server.ServerContext, account string) (*chat.Client, error) {
	return server.ClientFor(sc, instrumentation.ServiceChat, account, func(ctx context.Context) (*chat.Client, error) {
		return chat.NewClient(ctx, sc.Manager(), account)
	})
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler common.ToolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		tool.Name, instrumentation.ServiceChat, operation, sc, handler))
}

func maxResultsArg(args map[string]any) int64 {
	if n, ok := args["maxResults"].(float64); ok {
		return int64(n)
	}
	return 0
}

// RegisterChatTools registers all Chat tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterChatTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listSpacesTool := mcp.NewTool("chat_list_spaces",
		mcp.WithDescription("List the Chat spaces the account is a member of"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of spaces to return (default: 50)")),
	)
	addTool(s, sc, listSpacesTool, "spaces.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		spaces, err := client.ListSpaces(ctx, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if len(spaces) == 0 {
			return mcp.NewToolResultText("No spaces found"), nil
		}
		return common.JSONResult(spaces), nil
	})

	getSpaceTool := mcp.NewTool("chat_get_space",
		mcp.WithDescription("Get a Chat space"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
	)
	addTool(s, sc, getSpaceTool, "spaces.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		if space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		result, err := client.GetSpace(ctx, space)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(result), nil
	})

	listMessagesTool := mcp.NewTool("chat_list_messages",
		mcp.WithDescription("List the most recent messages in a space, newest first"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of messages to return (default: 25)")),
	)
	addTool(s, sc, listMessagesTool, "messages.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		if space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		messages, err := client.ListMessages(ctx, space, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if len(messages) == 0 {
			return mcp.NewToolResultText("No messages found"), nil
		}
		return common.JSONResult(messages), nil
	})

	getMessageTool := mcp.NewTool("chat_get_message",
		mcp.WithDescription("Get one Chat message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Message resource name, for example 'spaces/AAAA1234/messages/BBBB5678'")),
	)
	addTool(s, sc, getMessageTool, "messages.get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		message, err := client.GetMessage(ctx, name)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(message), nil
	})

	listMembersTool := mcp.NewTool("chat_list_members",
		mcp.WithDescription("List the members of a space"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of members to return (default: 50)")),
	)
	addTool(s, sc, listMembersTool, "members.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		if space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		members, err := client.ListMembers(ctx, space, maxResultsArg(args))
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if len(members) == 0 {
			return mcp.NewToolResultText("No members found"), nil
		}
		return common.JSONResult(members), nil
	})

	listReactionsTool := mcp.NewTool("chat_list_reactions",
		mcp.WithDescription("List the reactions on a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message resource name")),
	)
	addTool(s, sc, listReactionsTool, "reactions.list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		message, _ := args["message"].(string)
		if message == "" {
			return mcp.NewToolResultError("message is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		reactions, err := client.ListReactions(ctx, message)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if len(reactions) == 0 {
			return mcp.NewToolResultText("No reactions"), nil
		}
		return common.JSONResult(reactions), nil
	})

	if readOnly {
		return nil
	}

	createSpaceTool := mcp.NewTool("chat_create_space",
		mcp.WithDescription("Create a named Chat space"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("displayName", mcp.Required(), mcp.Description("Display name of the new space")),
	)
	addTool(s, sc, createSpaceTool, "spaces.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		displayName, _ := args["displayName"].(string)
		if displayName == "" {
			return mcp.NewToolResultError("displayName is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		space, err := client.CreateSpace(ctx, displayName)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(space), nil
	})

	updateSpaceTool := mcp.NewTool("chat_update_space",
		mcp.WithDescription("Rename a Chat space"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
		mcp.WithString("displayName", mcp.Required(), mcp.Description("New display name")),
	)
	addTool(s, sc, updateSpaceTool, "spaces.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		displayName, _ := args["displayName"].(string)
		if space == "" || displayName == "" {
			return mcp.NewToolResultError("space and displayName are required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		updated, err := client.UpdateSpace(ctx, space, displayName)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(updated), nil
	})

	deleteSpaceTool := mcp.NewTool("chat_delete_space",
		mcp.WithDescription("Delete a Chat space and everything in it. This cannot be undone."),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
	)
	addTool(s, sc, deleteSpaceTool, "spaces.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		if space == "" {
			return mcp.NewToolResultError("space is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteSpace(ctx, space); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Space %s deleted", space)), nil
	})

	addMemberTool := mcp.NewTool("chat_add_member",
		mcp.WithDescription("Invite a user to a space by email address"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the user to add")),
	)
	addTool(s, sc, addMemberTool, "members.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		email, _ := args["email"].(string)
		if space == "" || email == "" {
			return mcp.NewToolResultError("space and email are required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		member, err := client.AddMember(ctx, space, email)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(member), nil
	})

	removeMemberTool := mcp.NewTool("chat_remove_member",
		mcp.WithDescription("Remove a member from a space"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("membership", mcp.Required(), mcp.Description("Membership resource name, as returned by chat_list_members")),
	)
	addTool(s, sc, removeMemberTool, "members.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		membership, _ := args["membership"].(string)
		if membership == "" {
			return mcp.NewToolResultError("membership is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.RemoveMember(ctx, membership); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Member removed"), nil
	})

	sendTool := mcp.NewTool("chat_send_message",
		mcp.WithDescription("Post a text message to a space, optionally replying on a thread"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("space", mcp.Required(), mcp.Description("Space name, for example 'spaces/AAAA1234'")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text")),
		mcp.WithString("thread", mcp.Description("Thread resource name to reply on")),
	)
	addTool(s, sc, sendTool, "messages.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		space, _ := args["space"].(string)
		text, _ := args["text"].(string)
		if space == "" || text == "" {
			return mcp.NewToolResultError("space and text are required"), nil
		}
		thread, _ := args["thread"].(string)

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		sent, err := client.SendMessage(ctx, space, text, thread)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(sent), nil
	})

	updateTool := mcp.NewTool("chat_update_message",
		mcp.WithDescription("Replace the text of a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Message resource name")),
		mcp.WithString("text", mcp.Required(), mcp.Description("New message text")),
	)
	addTool(s, sc, updateTool, "messages.patch", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		text, _ := args["text"].(string)
		if name == "" || text == "" {
			return mcp.NewToolResultError("name and text are required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		updated, err := client.UpdateMessage(ctx, name, text)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(updated), nil
	})

	deleteTool := mcp.NewTool("chat_delete_message",
		mcp.WithDescription("Delete a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("name", mcp.Required(), mcp.Description("Message resource name")),
	)
	addTool(s, sc, deleteTool, "messages.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		name, _ := args["name"].(string)
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.DeleteMessage(ctx, name); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Message %s deleted", name)), nil
	})

	addReactionTool := mcp.NewTool("chat_add_reaction",
		mcp.WithDescription("Add a unicode emoji reaction to a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message resource name")),
		mcp.WithString("emoji", mcp.Required(), mcp.Description("Unicode emoji, for example '\U0001F44D'")),
	)
	addTool(s, sc, addReactionTool, "reactions.create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		message, _ := args["message"].(string)
		emoji, _ := args["emoji"].(string)
		if message == "" || emoji == "" {
			return mcp.NewToolResultError("message and emoji are required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		reaction, err := client.AddReaction(ctx, message, emoji)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		return common.JSONResult(reaction), nil
	})

	removeReactionTool := mcp.NewTool("chat_remove_reaction",
		mcp.WithDescription("Remove a reaction from a message"),
		mcp.WithString("account", mcp.Description(accountDesc)),
		mcp.WithString("reaction", mcp.Required(), mcp.Description("Reaction resource name, as returned by chat_list_reactions")),
	)
	addTool(s, sc, removeReactionTool, "reactions.delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		reaction, _ := args["reaction"].(string)
		if reaction == "" {
			return mcp.NewToolResultError("reaction is required"), nil
		}

		client, err := chatClient(sc, account)
		if err != nil {
			return common.ToolError(account, err), nil
		}
		if err := client.RemoveReaction(ctx, reaction); err != nil {
			return common.ToolError(account, err), nil
		}
		return mcp.NewToolResultText("Reaction removed"), nil
	})

	return nil
}
