// Package calendar_tools registers the Google Calendar MCP tools.
package calendar_tools
