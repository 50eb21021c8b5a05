package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/server"
)

func testServerContext(t *testing.T, readOnly bool) *server.ServerContext {
	t.Helper()
	manager := auth.NewManager(auth.NewFileStore(t.TempDir()))
	sc := server.NewServerContext(context.Background(), manager, server.WithReadOnly(readOnly))
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterAllTools(t *testing.T) {
	for _, readOnly := range []bool{true, false} {
		mcpSrv := mcpserver.NewMCPServer("workspace-mcp", "test",
			mcpserver.WithToolCapabilities(true))
		sc := testServerContext(t, readOnly)

		if err := registerAllTools(mcpSrv, sc, readOnly); err != nil {
			t.Fatalf("registerAllTools(readOnly=%t) failed: %v", readOnly, err)
		}
	}
}

func TestNewServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	for _, flag := range []string{"transport", "http-addr", "yolo", "debug", "credentials-dir", "metrics-enabled", "metrics-addr"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("serve command is missing the --%s flag", flag)
		}
	}

	if got := cmd.Flags().Lookup("transport").DefValue; got != "stdio" {
		t.Errorf("default transport = %q, want stdio", got)
	}
	if got := cmd.Flags().Lookup("yolo").DefValue; got != "false" {
		t.Errorf("default yolo = %q, want false", got)
	}
}
