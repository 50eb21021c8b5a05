// Package docs_tools registers the Google Docs MCP tools.
package docs_tools
