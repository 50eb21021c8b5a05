// Package logging centralizes structured logging for the workspace MCP
// server.
//
// All logs go through slog with a shared attribute vocabulary (operation,
// service, account, tool, status, error) so entries correlate across the
// credential manager, the Google API clients, and the tool layer. Account
// emails are hashed before logging and tokens are never logged.
//
// Logs are written to stderr: on the stdio transport stdout carries the MCP
// protocol stream and must stay clean.
package logging
