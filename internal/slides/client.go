package slides

import (
	"context"
	"fmt"
	"strings"

	slides "google.golang.org/api/slides/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Slides service for one account.
type Client struct {
	svc     *slides.Service
	account string
}

// NewClient creates a Slides client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := slides.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Slides service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// CreatePresentation creates a presentation with the given title.
func (c *Client) CreatePresentation(ctx context.Context, title string) (*Presentation, error) {
	created, err := c.svc.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create presentation %q: %w", title, err)
	}
	result := toPresentation(created)
	return &result, nil
}

// GetPresentation retrieves a presentation with per-slide text and speaker
// notes.
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*Presentation, error) {
	p, err := c.get(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	result := toPresentation(p)
	return &result, nil
}

// ReadSlide returns the text and notes of one slide.
func (c *Client) ReadSlide(ctx context.Context, presentationID, slideID string) (*Slide, error) {
	p, err := c.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	for i := range p.Slides {
		if p.Slides[i].ID == slideID {
			return &p.Slides[i], nil
		}
	}
	return nil, fmt.Errorf("slide %s not found in %s", slideID, presentationID)
}

// AddSlide appends a slide using a predefined layout and returns its object
// ID. Layout defaults to blank.
func (c *Client) AddSlide(ctx context.Context, presentationID, layout string) (string, error) {
	if layout == "" {
		layout = "blank"
	}
	predefined, ok := slideLayouts[strings.ToLower(layout)]
	if !ok {
		return "", fmt.Errorf("unknown layout %q", layout)
	}

	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		CreateSlide: &slides.CreateSlideRequest{
			SlideLayoutReference: &slides.LayoutReference{
				PredefinedLayout: predefined,
			},
		},
	})
	if err != nil {
		return "", err
	}
	for _, reply := range res.Replies {
		if reply.CreateSlide != nil {
			return reply.CreateSlide.ObjectId, nil
		}
	}
	return "", fmt.Errorf("no slide in create reply")
}

// DeleteSlide deletes a slide.
func (c *Client) DeleteSlide(ctx context.Context, presentationID, slideID string) error {
	_, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		DeleteObject: &slides.DeleteObjectRequest{ObjectId: slideID},
	})
	return err
}

// DuplicateSlide copies a slide and returns the new slide's object ID.
func (c *Client) DuplicateSlide(ctx context.Context, presentationID, slideID string) (string, error) {
	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		DuplicateObject: &slides.DuplicateObjectRequest{ObjectId: slideID},
	})
	if err != nil {
		return "", err
	}
	for _, reply := range res.Replies {
		if reply.DuplicateObject != nil {
			return reply.DuplicateObject.ObjectId, nil
		}
	}
	return "", fmt.Errorf("no slide in duplicate reply")
}

// MoveSlide moves a slide to a zero-based position.
func (c *Client) MoveSlide(ctx context.Context, presentationID, slideID string, index int64) error {
	_, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		UpdateSlidesPosition: &slides.UpdateSlidesPositionRequest{
			SlideObjectIds:  []string{slideID},
			InsertionIndex:  index,
			ForceSendFields: []string{"InsertionIndex"},
		},
	})
	return err
}

// Box positions a page element in points.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func elementProperties(slideID string, box Box) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectId: slideID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: box.Width, Unit: "PT"},
			Height: &slides.Dimension{Magnitude: box.Height, Unit: "PT"},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: box.X,
			TranslateY: box.Y,
			Unit:       "PT",
		},
	}
}

// InsertTextBox adds a text box with the given content to a slide and
// returns its object ID.
func (c *Client) InsertTextBox(ctx context.Context, presentationID, slideID, text string, box Box) (string, error) {
	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		CreateShape: &slides.CreateShapeRequest{
			ShapeType:         "TEXT_BOX",
			ElementProperties: elementProperties(slideID, box),
		},
	})
	if err != nil {
		return "", err
	}

	var objectID string
	for _, reply := range res.Replies {
		if reply.CreateShape != nil {
			objectID = reply.CreateShape.ObjectId
		}
	}
	if objectID == "" {
		return "", fmt.Errorf("no shape in create reply")
	}

	if text != "" {
		_, err = c.batchUpdate(ctx, presentationID, &slides.Request{
			InsertText: &slides.InsertTextRequest{
				ObjectId: objectID,
				Text:     text,
			},
		})
		if err != nil {
			return "", err
		}
	}
	return objectID, nil
}

// CreateShape adds a shape such as RECTANGLE or ELLIPSE to a slide and
// returns its object ID.
func (c *Client) CreateShape(ctx context.Context, presentationID, slideID, shapeType string, box Box) (string, error) {
	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		CreateShape: &slides.CreateShapeRequest{
			ShapeType:         strings.ToUpper(shapeType),
			ElementProperties: elementProperties(slideID, box),
		},
	})
	if err != nil {
		return "", err
	}
	for _, reply := range res.Replies {
		if reply.CreateShape != nil {
			return reply.CreateShape.ObjectId, nil
		}
	}
	return "", fmt.Errorf("no shape in create reply")
}

// InsertImage adds an image from a public URL to a slide and returns its
// object ID.
func (c *Client) InsertImage(ctx context.Context, presentationID, slideID, imageURL string, box Box) (string, error) {
	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		CreateImage: &slides.CreateImageRequest{
			Url:               imageURL,
			ElementProperties: elementProperties(slideID, box),
		},
	})
	if err != nil {
		return "", err
	}
	for _, reply := range res.Replies {
		if reply.CreateImage != nil {
			return reply.CreateImage.ObjectId, nil
		}
	}
	return "", fmt.Errorf("no image in create reply")
}

// ReplaceText replaces every occurrence of find across all slides. It
// returns the number of occurrences changed.
func (c *Client) ReplaceText(ctx context.Context, presentationID, find, replace string, matchCase bool) (int64, error) {
	res, err := c.batchUpdate(ctx, presentationID, &slides.Request{
		ReplaceAllText: &slides.ReplaceAllTextRequest{
			ContainsText: &slides.SubstringMatchCriteria{Text: find, MatchCase: matchCase},
			ReplaceText:  replace,
		},
	})
	if err != nil {
		return 0, err
	}
	var changed int64
	for _, reply := range res.Replies {
		if reply.ReplaceAllText != nil {
			changed += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return changed, nil
}

// TextFormat describes character-level formatting for FormatText. Nil fields
// are left unchanged.
type TextFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	FontSize  *float64 // points
	Color     string   // #RRGGBB
}

// FormatText applies character formatting to the range [start, end) within a
// shape's text.
func (c *Client) FormatText(ctx context.Context, presentationID, objectID string, start, end int64, format TextFormat) error {
	req, err := textStyleRequest(objectID, start, end, format)
	if err != nil {
		return err
	}
	_, err = c.batchUpdate(ctx, presentationID, req)
	return err
}

func textStyleRequest(objectID string, start, end int64, format TextFormat) (*slides.Request, error) {
	if end <= start {
		return nil, fmt.Errorf("invalid text range [%d, %d)", start, end)
	}
	style := &slides.TextStyle{}
	var fields []string

	if format.Bold != nil {
		style.Bold = *format.Bold
		fields = append(fields, "bold")
	}
	if format.Italic != nil {
		style.Italic = *format.Italic
		fields = append(fields, "italic")
	}
	if format.Underline != nil {
		style.Underline = *format.Underline
		fields = append(fields, "underline")
	}
	if format.FontSize != nil {
		style.FontSize = &slides.Dimension{Magnitude: *format.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if format.Color != "" {
		color, err := parseColor(format.Color)
		if err != nil {
			return nil, err
		}
		style.ForegroundColor = &slides.OptionalColor{
			OpaqueColor: &slides.OpaqueColor{RgbColor: color},
		}
		fields = append(fields, "foregroundColor")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no formatting fields given")
	}

	return &slides.Request{
		UpdateTextStyle: &slides.UpdateTextStyleRequest{
			ObjectId: objectID,
			TextRange: &slides.Range{
				Type:            "FIXED_RANGE",
				StartIndex:      &start,
				EndIndex:        &end,
				ForceSendFields: []string{"StartIndex", "EndIndex"},
			},
			Style:  style,
			Fields: strings.Join(fields, ","),
		},
	}, nil
}

// SetNotes replaces the speaker notes of a slide.
func (c *Client) SetNotes(ctx context.Context, presentationID, slideID, notes string) error {
	p, err := c.get(ctx, presentationID)
	if err != nil {
		return err
	}

	var notesID string
	var existing string
	for _, page := range p.Slides {
		if page.ObjectId == slideID {
			notesID = speakerNotesID(page)
			existing = notesText(page)
			break
		}
	}
	if notesID == "" {
		return fmt.Errorf("slide %s has no speaker notes shape", slideID)
	}

	var requests []*slides.Request
	if existing != "" {
		requests = append(requests, &slides.Request{
			DeleteText: &slides.DeleteTextRequest{
				ObjectId:  notesID,
				TextRange: &slides.Range{Type: "ALL"},
			},
		})
	}
	if notes != "" {
		requests = append(requests, &slides.Request{
			InsertText: &slides.InsertTextRequest{
				ObjectId: notesID,
				Text:     notes,
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	_, err = c.batchUpdate(ctx, presentationID, requests...)
	return err
}

func (c *Client) get(ctx context.Context, presentationID string) (*slides.Presentation, error) {
	p, err := c.svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get presentation %s: %w", presentationID, err)
	}
	return p, nil
}

func (c *Client) batchUpdate(ctx context.Context, presentationID string, requests ...*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
	res, err := c.svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update presentation %s: %w", presentationID, err)
	}
	return res, nil
}
