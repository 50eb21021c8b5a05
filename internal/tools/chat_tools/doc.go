// Package chat_tools registers the Google Chat MCP tools.
package chat_tools
