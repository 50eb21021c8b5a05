package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/common"
)

const accountDesc = "Account name (default: 'default'). Used to manage multiple Google accounts."

// RegisterGoogleTools registers the account management tools with the MCP
// server. Mutating tools are skipped in read-only mode.
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	statusTool := mcp.NewTool("google_auth_status",
		mcp.WithDescription("Report the credential state of one account, or of every stored account"),
		mcp.WithString("account", mcp.Description("Account to check (default: all stored accounts)")),
	)
	s.AddTool(statusTool, common.InstrumentedToolHandler("google_auth_status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		if account, _ := args["account"].(string); account != "" {
			return common.JSONResult(sc.Manager().Status(account)), nil
		}

		accounts, err := sc.Manager().Accounts()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list accounts: %v", err)), nil
		}
		if len(accounts) == 0 {
			return mcp.NewToolResultText("No accounts authorized. Run 'workspace-mcp auth' to authorize one."), nil
		}
		statuses := make([]auth.Status, 0, len(accounts))
		for _, account := range accounts {
			statuses = append(statuses, sc.Manager().Status(account))
		}
		return common.JSONResult(statuses), nil
	}))

	authorizeTool := mcp.NewTool("google_authorize",
		mcp.WithDescription("Explain how to authorize an account. Authorization needs a browser, so it runs outside the MCP session."),
		mcp.WithString("account", mcp.Description(accountDesc)),
	)
	s.AddTool(authorizeTool, common.InstrumentedToolHandler("google_authorize", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		account := common.GetAccountFromArgs(request.GetArguments())

		if sc.Manager().Status(account).Valid {
			return mcp.NewToolResultText(fmt.Sprintf("Account %q is already authorized with a valid token.", account)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Authorization requires a browser consent flow. Run this on the machine hosting the server:\n\n"+
				"    workspace-mcp auth --account %s\n\n"+
				"The command opens the Google consent page, waits for the redirect, and stores the credential. "+
				"Tools pick up the new credential automatically.", account)), nil
	}))

	if readOnly {
		return nil
	}

	revokeTool := mcp.NewTool("google_revoke_credential",
		mcp.WithDescription("Delete the stored credential of an account. The account must be reauthorized before further use."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account whose credential to delete")),
	)
	s.AddTool(revokeTool, common.InstrumentedToolHandler("google_revoke_credential", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account, _ := args["account"].(string)
		if account == "" {
			return mcp.NewToolResultError("account is required"), nil
		}

		if !sc.Manager().HasCredential(account) {
			return mcp.NewToolResultError(fmt.Sprintf("no credential stored for account %q", account)), nil
		}
		if err := sc.Manager().Invalidate(account); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("revoke credential for %q: %v", account, err)), nil
		}
		sc.InvalidateClients(account)
		return mcp.NewToolResultText(fmt.Sprintf("Credential for %q deleted.", account)), nil
	}))

	return nil
}
