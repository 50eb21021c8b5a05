// Package gmail_tools registers the Gmail MCP tools: search and reading,
// composition, message state, labels, threads, drafts, and attachments.
package gmail_tools
