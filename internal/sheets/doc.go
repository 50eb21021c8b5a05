// Package sheets wraps the Google Sheets v4 API. Cell values go through the
// values endpoints; structural changes go through batchUpdate requests
// addressed by sheet ID and grid ranges.
package sheets
