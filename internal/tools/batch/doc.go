// Package batch provides helpers for tools that accept a single ID or an
// array of IDs, applying one operation per item and aggregating per-item
// outcomes so a partial failure never aborts the whole call.
package batch
