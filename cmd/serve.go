package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/instrumentation"
	"github.com/rlarsen/workspace-mcp/internal/logging"
	"github.com/rlarsen/workspace-mcp/internal/server"
	"github.com/rlarsen/workspace-mcp/internal/tools/calendar_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/chat_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/docs_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/drive_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/forms_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/gmail_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/google_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/sheets_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/slides_tools"
	"github.com/rlarsen/workspace-mcp/internal/tools/tasks_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		transport      string
		httpAddr       string
		yolo           bool
		credentialsDir string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Google Workspace
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (email sending, file
  deletion, etc.)

Accounts must be authorized ahead of time with 'workspace-mcp auth'. The
server refreshes access tokens automatically; it never starts an
interactive consent flow.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsConfig.Addr = addr
				}
			}
			return runServe(transport, debugMode, httpAddr, yolo, credentialsDir, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (email sending, file deletion, etc.). Default is read-only mode.")
	cmd.Flags().StringVar(&credentialsDir, "credentials-dir", "", "Directory holding per-account credential files. Can also use GOOGLE_WORKSPACE_MCP_DIR env var.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port (streamable-http transport only)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, yolo bool, credentialsDir string, metricsConfig MetricsConfig) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Stdout is the MCP wire on the stdio transport, so logs go to stderr.
	level := "info"
	if debugMode {
		level = "debug"
	}
	logger := logging.Setup(os.Stderr, level)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	manager, err := newManager(logger, provider, credentialsDir)
	if err != nil {
		return err
	}

	readOnly := !yolo
	if readOnly {
		logger.Info("starting in read-only mode, use --yolo to enable write operations")
	} else {
		logger.Info("starting with write operations enabled")
	}

	serverContext := server.NewServerContext(shutdownCtx, manager,
		server.WithMetrics(provider.Metrics()),
		server.WithReadOnly(readOnly),
	)
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("workspace-mcp", version,
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, provider, httpAddr, metricsConfig, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// newManager builds the credential manager over the file store, wiring the
// OAuth client config as refresh fallback when one is available.
func newManager(logger *slog.Logger, provider *instrumentation.Provider, credentialsDir string) (*auth.Manager, error) {
	if credentialsDir == "" {
		credentialsDir = auth.DefaultCredentialsDir()
	}
	store := auth.NewFileStore(credentialsDir)

	opts := []auth.Option{
		auth.WithLogger(logger),
		auth.WithMetrics(provider.Metrics()),
	}
	conf, err := auth.LoadClientSecret(auth.DefaultClientSecretPath(), auth.DefaultScopes)
	if err != nil {
		// Persisted credentials carry their own client fields, so the
		// server can run without the client secret file.
		logger.Debug("no OAuth client config, refresh relies on persisted client fields", logging.Err(err))
	} else {
		opts = append(opts, auth.WithFallbackConfig(conf))
	}
	return auth.NewManager(store, opts...), nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, provider *instrumentation.Provider, addr string, metricsConfig MetricsConfig, logger *slog.Logger) error {
	healthChecker := server.NewHealthChecker(serverContext)

	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() && provider.PrometheusEnabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:     metricsConfig.Addr,
			Provider: provider,
			Health:   healthChecker,
		})
		if err != nil {
			return fmt.Errorf("create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv)
	logger.Info("starting streamable HTTP server", "addr", addr)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shut down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}
	return nil
}

// registerAllTools registers every tool family with the MCP server.
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func(*mcpserver.MCPServer, *server.ServerContext, bool) error
	}

	registrations := []toolRegistration{
		{"Google accounts", google_tools.RegisterGoogleTools},
		{"Gmail", gmail_tools.RegisterGmailTools},
		{"Drive", drive_tools.RegisterDriveTools},
		{"Docs", docs_tools.RegisterDocsTools},
		{"Sheets", sheets_tools.RegisterSheetsTools},
		{"Slides", slides_tools.RegisterSlidesTools},
		{"Forms", forms_tools.RegisterFormsTools},
		{"Chat", chat_tools.RegisterChatTools},
		{"Calendar", calendar_tools.RegisterCalendarTools},
		{"Tasks", tasks_tools.RegisterTasksTools},
	}

	for _, reg := range registrations {
		if err := reg.register(mcpSrv, sc, readOnly); err != nil {
			return fmt.Errorf("register %s tools: %w", reg.name, err)
		}
	}
	return nil
}
