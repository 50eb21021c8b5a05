// Package drive_tools registers the Google Drive MCP tools: file listing
// and transfer, organization, sharing, and revisions.
package drive_tools
