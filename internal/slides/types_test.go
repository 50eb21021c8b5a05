package slides

import (
	"testing"

	slides "google.golang.org/api/slides/v1"
)

func shapeWithText(text string) *slides.PageElement {
	return &slides.PageElement{
		Shape: &slides.Shape{
			Text: &slides.TextContent{
				TextElements: []*slides.TextElement{
					{TextRun: &slides.TextRun{Content: text}},
				},
			},
		},
	}
}

func TestToPresentation(t *testing.T) {
	p := toPresentation(&slides.Presentation{
		PresentationId: "pres-1",
		Title:          "Roadmap",
		Slides: []*slides.Page{
			{
				ObjectId: "slide-1",
				PageElements: []*slides.PageElement{
					shapeWithText("Welcome"),
					shapeWithText("Agenda"),
				},
			},
			{ObjectId: "slide-2"},
		},
	})

	if p.ID != "pres-1" || p.Title != "Roadmap" {
		t.Errorf("presentation = %+v", p)
	}
	if len(p.Slides) != 2 {
		t.Fatalf("got %d slides", len(p.Slides))
	}
	if p.Slides[0].Text != "Welcome\nAgenda" {
		t.Errorf("slide text = %q", p.Slides[0].Text)
	}
	if p.Slides[1].Index != 1 || p.Slides[1].Text != "" {
		t.Errorf("slide 2 = %+v", p.Slides[1])
	}
	if p.URL != "https://docs.google.com/presentation/d/pres-1/edit" {
		t.Errorf("url = %q", p.URL)
	}
}

func TestPageTextTable(t *testing.T) {
	page := &slides.Page{
		PageElements: []*slides.PageElement{
			{
				Table: &slides.Table{
					TableRows: []*slides.TableRow{
						{
							TableCells: []*slides.TableCell{
								{Text: &slides.TextContent{TextElements: []*slides.TextElement{{TextRun: &slides.TextRun{Content: "x\n"}}}}},
								{Text: &slides.TextContent{TextElements: []*slides.TextElement{{TextRun: &slides.TextRun{Content: "y\n"}}}}},
							},
						},
					},
				},
			},
		},
	}
	if got := pageText(page); got != "x\ty" {
		t.Errorf("pageText = %q", got)
	}
}

func TestNotesText(t *testing.T) {
	page := &slides.Page{
		SlideProperties: &slides.SlideProperties{
			NotesPage: &slides.Page{
				PageElements:    []*slides.PageElement{shapeWithText("remember the demo\n")},
				NotesProperties: &slides.NotesProperties{SpeakerNotesObjectId: "notes-shape"},
			},
		},
	}
	if got := notesText(page); got != "remember the demo" {
		t.Errorf("notesText = %q", got)
	}
	if got := speakerNotesID(page); got != "notes-shape" {
		t.Errorf("speakerNotesID = %q", got)
	}
	if got := notesText(&slides.Page{}); got != "" {
		t.Errorf("notesText(no notes) = %q", got)
	}
}

func TestSlideLayouts(t *testing.T) {
	if slideLayouts["blank"] != "BLANK" {
		t.Errorf("blank = %q", slideLayouts["blank"])
	}
	if slideLayouts["title_and_body"] != "TITLE_AND_BODY" {
		t.Errorf("title_and_body = %q", slideLayouts["title_and_body"])
	}
}

func TestTextStyleRequest(t *testing.T) {
	bold := true
	size := 18.0
	req, err := textStyleRequest("shape-1", 0, 5, TextFormat{Bold: &bold, FontSize: &size, Color: "#FF0000"})
	if err != nil {
		t.Fatalf("textStyleRequest: %v", err)
	}
	u := req.UpdateTextStyle
	if u.ObjectId != "shape-1" {
		t.Errorf("object = %q", u.ObjectId)
	}
	if u.TextRange.Type != "FIXED_RANGE" || *u.TextRange.StartIndex != 0 || *u.TextRange.EndIndex != 5 {
		t.Errorf("range = %+v", u.TextRange)
	}
	if u.Fields != "bold,fontSize,foregroundColor" {
		t.Errorf("fields = %q", u.Fields)
	}
	if !u.Style.Bold || u.Style.FontSize.Magnitude != 18 {
		t.Errorf("style = %+v", u.Style)
	}
	if u.Style.ForegroundColor.OpaqueColor.RgbColor.Red != 1 {
		t.Errorf("color = %+v", u.Style.ForegroundColor)
	}
}

func TestTextStyleRequestRejectsBadInput(t *testing.T) {
	bold := true
	if _, err := textStyleRequest("shape-1", 5, 5, TextFormat{Bold: &bold}); err == nil {
		t.Error("expected error for empty range")
	}
	if _, err := textStyleRequest("shape-1", 0, 5, TextFormat{}); err == nil {
		t.Error("expected error when no fields are set")
	}
	if _, err := textStyleRequest("shape-1", 0, 5, TextFormat{Color: "red"}); err == nil {
		t.Error("expected error for named color")
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#0080FF")
	if err != nil {
		t.Fatalf("parseColor: %v", err)
	}
	if c.Red != 0 || c.Blue != 1 {
		t.Errorf("color = %+v", c)
	}
	if _, err := parseColor("#FFF"); err == nil {
		t.Error("expected error for short hex")
	}
}

func TestElementProperties(t *testing.T) {
	props := elementProperties("slide-1", Box{X: 10, Y: 20, Width: 300, Height: 100})
	if props.PageObjectId != "slide-1" {
		t.Errorf("page = %q", props.PageObjectId)
	}
	if props.Size.Width.Magnitude != 300 || props.Size.Height.Magnitude != 100 {
		t.Errorf("size = %+v", props.Size)
	}
	if props.Transform.TranslateX != 10 || props.Transform.TranslateY != 20 {
		t.Errorf("transform = %+v", props.Transform)
	}
	if props.Transform.ScaleX != 1 || props.Transform.Unit != "PT" {
		t.Errorf("transform = %+v", props.Transform)
	}
}
