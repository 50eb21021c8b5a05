package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the workspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "workspace-mcp",
	Short: "MCP server for Google Workspace",
	Long: `workspace-mcp is an MCP (Model Context Protocol) server that exposes
Google Workspace to AI assistants: Gmail, Drive, Docs, Sheets, Slides,
Forms, Chat, Calendar, and Tasks.

Credentials are stored per account. Run 'workspace-mcp auth' once per
account to authorize it, then 'workspace-mcp serve' to start the server.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "workspace-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newAccountsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
