package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/server"
)

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandlerPassesThrough(t *testing.T) {
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := server.NewServerContext(context.Background(), manager)
	defer sc.Shutdown()

	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), newRequest(map[string]any{"account": "default"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestInstrumentedToolHandlerPropagatesError(t *testing.T) {
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := server.NewServerContext(context.Background(), manager)
	defer sc.Shutdown()

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandlerWithService("test_tool", "gmail", "list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), newRequest(nil))
	assert.ErrorIs(t, err, wantErr)
}
