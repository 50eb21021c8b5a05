// Package slides wraps the Google Slides v1 API. Page elements are
// positioned in points; edits go through batchUpdate requests.
package slides
