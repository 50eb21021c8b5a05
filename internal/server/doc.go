// Package server holds the shared runtime state of the MCP server.
//
// ServerContext carries the credential manager, the instrumentation provider,
// and a per-(service, account) cache of Google API clients, so every tool
// handler reaches Google through the same authenticated plumbing. It also
// provides the dedicated metrics HTTP server and the health endpoints used by
// Kubernetes probes.
package server
