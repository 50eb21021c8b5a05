package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// Document is the readable view of a document.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Body  string `json:"body,omitempty"`
}

// Named paragraph styles for ApplyHeading.
var headingStyles = map[string]string{
	"normal":   "NORMAL_TEXT",
	"title":    "TITLE",
	"subtitle": "SUBTITLE",
	"h1":       "HEADING_1",
	"h2":       "HEADING_2",
	"h3":       "HEADING_3",
	"h4":       "HEADING_4",
	"h5":       "HEADING_5",
	"h6":       "HEADING_6",
}

// List presets for CreateList.
var listPresets = map[string]string{
	"bullet":   "BULLET_DISC_CIRCLE_SQUARE",
	"numbered": "NUMBERED_DECIMAL_ALPHA_ROMAN",
	"checkbox": "BULLET_CHECKBOX",
}

func documentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}

// extractText flattens a document body into plain text. Tables render row by
// row with cells joined by tabs.
func extractText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var sb strings.Builder
	writeStructuralElements(&sb, doc.Body.Content)
	return sb.String()
}

func writeStructuralElements(sb *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun != nil {
					sb.WriteString(pe.TextRun.Content)
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for i, cell := range row.TableCells {
					if i > 0 {
						sb.WriteString("\t")
					}
					var cellBuf strings.Builder
					writeStructuralElements(&cellBuf, cell.Content)
					sb.WriteString(strings.TrimRight(cellBuf.String(), "\n"))
				}
				sb.WriteString("\n")
			}
		}
	}
}

// endIndex returns the index just before the document's final newline, the
// insertion point for appends.
func endIndex(doc *docs.Document) int64 {
	if doc == nil || doc.Body == nil || len(doc.Body.Content) == 0 {
		return 1
	}
	last := doc.Body.Content[len(doc.Body.Content)-1]
	if last.EndIndex <= 1 {
		return 1
	}
	return last.EndIndex - 1
}
