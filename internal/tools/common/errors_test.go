package common

import (
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestToolErrorAuthRequired(t *testing.T) {
	result := ToolError("work@example.com", &auth.NoCredentialError{Account: "work@example.com"})
	assert.True(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "workspace-mcp auth")
	assert.Contains(t, text, "work@example.com")
}

func TestToolErrorRetryable(t *testing.T) {
	result := ToolError("default", &auth.TransientError{Op: "token refresh", Err: errors.New("503")})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Retry")
}

func TestToolErrorGeneric(t *testing.T) {
	result := ToolError("default", errors.New("no such file"))
	assert.True(t, result.IsError)
	assert.Equal(t, "no such file", resultText(t, result))
}
