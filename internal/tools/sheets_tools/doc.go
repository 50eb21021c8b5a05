// Package sheets_tools registers the Google Sheets MCP tools: spreadsheet
// and value operations plus structural and formatting edits.
package sheets_tools
