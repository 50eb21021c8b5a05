// Package google_tools registers account and authorization MCP tools that are
// not tied to one Google service.
package google_tools
