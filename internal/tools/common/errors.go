package common

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

// ToolError normalizes an error into an MCP tool error result. Credential
// errors become actionable instructions instead of raw error text.
func ToolError(account string, err error) *mcp.CallToolResult {
	switch {
	case auth.IsAuthRequired(err):
		return mcp.NewToolResultError(fmt.Sprintf(
			"No valid Google credential for account %q: %v\n\n"+
				"Run `workspace-mcp auth --account %s` in a terminal to authorize access, then retry.",
			account, err, account))
	case auth.IsRetryable(err):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Temporary failure talking to Google for account %q: %v\n\nRetry in a moment.",
			account, err))
	default:
		return mcp.NewToolResultError(err.Error())
	}
}
