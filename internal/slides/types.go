package slides

import (
	"fmt"
	"strconv"
	"strings"

	slides "google.golang.org/api/slides/v1"
)

// Presentation is the readable view of a presentation.
type Presentation struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Slides []Slide `json:"slides,omitempty"`
}

// Slide is one page: its element text flattened in document order.
type Slide struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Predefined layouts accepted by AddSlide.
var slideLayouts = map[string]string{
	"blank":          "BLANK",
	"title":          "TITLE",
	"title_and_body": "TITLE_AND_BODY",
	"title_only":     "TITLE_ONLY",
	"section_header": "SECTION_HEADER",
	"one_column":     "ONE_COLUMN_TEXT",
	"two_columns":    "TITLE_AND_TWO_COLUMNS",
}

// parseColor converts a #RRGGBB hex string into an API color.
func parseColor(hex string) (*slides.RgbColor, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q, expected #RRGGBB", hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return &slides.RgbColor{
		Red:   float64(n>>16&0xff) / 255,
		Green: float64(n>>8&0xff) / 255,
		Blue:  float64(n&0xff) / 255,
	}, nil
}

func presentationURL(presentationID string) string {
	return "https://docs.google.com/presentation/d/" + presentationID + "/edit"
}

func toPresentation(p *slides.Presentation) Presentation {
	if p == nil {
		return Presentation{}
	}
	out := Presentation{
		ID:    p.PresentationId,
		Title: p.Title,
		URL:   presentationURL(p.PresentationId),
	}
	for i, page := range p.Slides {
		out.Slides = append(out.Slides, Slide{
			ID:    page.ObjectId,
			Index: i,
			Text:  pageText(page),
			Notes: notesText(page),
		})
	}
	return out
}

// pageText flattens the text of every shape and table on a page.
func pageText(page *slides.Page) string {
	if page == nil {
		return ""
	}
	var parts []string
	for _, el := range page.PageElements {
		if text := elementText(el); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func elementText(el *slides.PageElement) string {
	if el == nil {
		return ""
	}
	var sb strings.Builder
	switch {
	case el.Shape != nil:
		writeTextContent(&sb, el.Shape.Text)
	case el.Table != nil:
		for _, row := range el.Table.TableRows {
			for i, cell := range row.TableCells {
				if i > 0 {
					sb.WriteString("\t")
				}
				var cellBuf strings.Builder
				writeTextContent(&cellBuf, cell.Text)
				sb.WriteString(strings.TrimRight(cellBuf.String(), "\n"))
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeTextContent(sb *strings.Builder, text *slides.TextContent) {
	if text == nil {
		return
	}
	for _, te := range text.TextElements {
		if te.TextRun != nil {
			sb.WriteString(te.TextRun.Content)
		}
	}
}

func notesText(page *slides.Page) string {
	if page == nil || page.SlideProperties == nil {
		return ""
	}
	return strings.TrimRight(pageText(page.SlideProperties.NotesPage), "\n")
}

// speakerNotesID returns the object ID of a slide's speaker notes shape.
func speakerNotesID(page *slides.Page) string {
	if page == nil || page.SlideProperties == nil || page.SlideProperties.NotesPage == nil {
		return ""
	}
	props := page.SlideProperties.NotesPage.NotesProperties
	if props == nil {
		return ""
	}
	return props.SpeakerNotesObjectId
}
