// Package calendar wraps the Google Calendar API for the MCP tool layer.
package calendar
