// Package tasks_tools registers the Google Tasks MCP tools.
package tasks_tools
