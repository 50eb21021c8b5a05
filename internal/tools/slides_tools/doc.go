// Package slides_tools registers the Google Slides MCP tools.
package slides_tools
