// Package docs wraps the Google Docs v1 API. Content edits go through
// batchUpdate requests addressed by document character indexes.
package docs
