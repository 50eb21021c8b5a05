package docs

import (
	"context"
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func TestAddBookmarkValidatesInput(t *testing.T) {
	c := &Client{}
	if _, err := c.AddBookmark(context.Background(), "doc-1", "", 5); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := c.AddBookmark(context.Background(), "doc-1", "intro", 0); err == nil {
		t.Error("expected error for index below 1")
	}
}

func paragraph(text string) *docs.StructuralElement {
	return &docs.StructuralElement{
		Paragraph: &docs.Paragraph{
			Elements: []*docs.ParagraphElement{
				{TextRun: &docs.TextRun{Content: text}},
			},
		},
	}
}

func TestExtractText(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				paragraph("Title line\n"),
				paragraph("Second paragraph\n"),
			},
		},
	}
	if got := extractText(doc); got != "Title line\nSecond paragraph\n" {
		t.Errorf("extractText = %q", got)
	}
}

func TestExtractTextTable(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{
					Table: &docs.Table{
						TableRows: []*docs.TableRow{
							{
								TableCells: []*docs.TableCell{
									{Content: []*docs.StructuralElement{paragraph("a\n")}},
									{Content: []*docs.StructuralElement{paragraph("b\n")}},
								},
							},
						},
					},
				},
			},
		},
	}
	if got := extractText(doc); got != "a\tb\n" {
		t.Errorf("extractText = %q", got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := extractText(nil); got != "" {
		t.Errorf("extractText(nil) = %q", got)
	}
	if got := extractText(&docs.Document{}); got != "" {
		t.Errorf("extractText(empty) = %q", got)
	}
}

func TestEndIndex(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{EndIndex: 10},
				{EndIndex: 42},
			},
		},
	}
	if got := endIndex(doc); got != 41 {
		t.Errorf("endIndex = %d, want 41", got)
	}
	if got := endIndex(&docs.Document{}); got != 1 {
		t.Errorf("endIndex(empty) = %d, want 1", got)
	}
}

func TestHeadingStyles(t *testing.T) {
	if headingStyles["h1"] != "HEADING_1" {
		t.Errorf("h1 = %q", headingStyles["h1"])
	}
	if headingStyles["normal"] != "NORMAL_TEXT" {
		t.Errorf("normal = %q", headingStyles["normal"])
	}
	if _, ok := headingStyles["h7"]; ok {
		t.Error("h7 must not exist")
	}
}

func TestDocumentURL(t *testing.T) {
	if got := documentURL("abc"); got != "https://docs.google.com/document/d/abc/edit" {
		t.Errorf("documentURL = %q", got)
	}
}
