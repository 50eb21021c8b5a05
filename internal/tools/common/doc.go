// Package common holds helpers shared by the per-service tool packages:
// account resolution from tool arguments and the instrumentation wrapper
// applied to every registered handler.
package common
