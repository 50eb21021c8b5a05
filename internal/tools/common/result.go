package common

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// JSONResult marshals a value as an indented JSON tool result.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}
