// Package gmail wraps the Gmail API for the MCP tool layer: message search
// and retrieval, sending (including replies and forwards), label management,
// threads, drafts, and attachment access.
//
// Outbound mail is composed as RFC 2822 messages and base64url-encoded the
// way the Gmail API expects. Label mutations take raw label IDs; the tool
// layer maps user-facing operations (star, archive, mark read) onto the
// system label IDs.
package gmail
