// Package tasks wraps the Google Tasks API with a typed client used by the
// MCP tool layer. Vendor resources are converted to flat local types so tool
// output stays stable across API client upgrades.
package tasks
