package docs

import (
	"context"
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Docs service for one account.
type Client struct {
	svc     *docs.Service
	account string
}

// NewClient creates a Docs client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := docs.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Docs service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// CreateDocument creates an empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	created, err := c.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create document %q: %w", title, err)
	}
	return &Document{
		ID:    created.DocumentId,
		Title: created.Title,
		URL:   documentURL(created.DocumentId),
	}, nil
}

// GetDocument retrieves a document with its body flattened to plain text.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	doc, err := c.get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &Document{
		ID:    doc.DocumentId,
		Title: doc.Title,
		URL:   documentURL(doc.DocumentId),
		Body:  extractText(doc),
	}, nil
}

// AppendText appends text at the end of the document body.
func (c *Client) AppendText(ctx context.Context, documentID, text string) error {
	doc, err := c.get(ctx, documentID)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: endIndex(doc)},
			Text:     text,
		},
	})
}

// InsertText inserts text at a character index.
func (c *Client) InsertText(ctx context.Context, documentID string, index int64, text string) error {
	return c.batchUpdate(ctx, documentID, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: index},
			Text:     text,
		},
	})
}

// ReplaceText replaces every occurrence of find with replace. It returns the
// number of occurrences changed.
func (c *Client) ReplaceText(ctx context.Context, documentID, find, replace string, matchCase bool) (int64, error) {
	res, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			ReplaceAllText: &docs.ReplaceAllTextRequest{
				ContainsText: &docs.SubstringMatchCriteria{Text: find, MatchCase: matchCase},
				ReplaceText:  replace,
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("replace text in %s: %w", documentID, err)
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
	FontName  string
	LinkURL   string
}

// FormatText applies character formatting to the range [start, end).
func (c *Client) FormatText(ctx context.Context, documentID string, start, end int64, format TextFormat) error {
	style := &docs.TextStyle{}
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
		style.FontSize = &docs.Dimension{Magnitude: *format.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if format.FontName != "" {
		style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: format.FontName}
		fields = append(fields, "weightedFontFamily")
	}
	if format.LinkURL != "" {
		style.Link = &docs.Link{Url: format.LinkURL}
		fields = append(fields, "link")
	}
	if len(fields) == 0 {
		return fmt.Errorf("no formatting fields given")
	}

	return c.batchUpdate(ctx, documentID, &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		},
	})
}

// ApplyHeading sets the paragraph style of the range. Style is one of
// normal, title, subtitle, or h1 through h6.
func (c *Client) ApplyHeading(ctx context.Context, documentID string, start, end int64, style string) error {
	named, ok := headingStyles[strings.ToLower(style)]
	if !ok {
		return fmt.Errorf("unknown heading style %q", style)
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: named},
			Fields:         "namedStyleType",
		},
	})
}

// CreateList turns the paragraphs in the range into a list. Preset is
// bullet, numbered, or checkbox.
func (c *Client) CreateList(ctx context.Context, documentID string, start, end int64, preset string) error {
	bulletPreset, ok := listPresets[strings.ToLower(preset)]
	if !ok {
		return fmt.Errorf("unknown list preset %q", preset)
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{
		CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        &docs.Range{StartIndex: start, EndIndex: end},
			BulletPreset: bulletPreset,
		},
	})
}

// InsertTable inserts an empty table at a character index.
func (c *Client) InsertTable(ctx context.Context, documentID string, index, rows, columns int64) error {
	if rows <= 0 || columns <= 0 {
		return fmt.Errorf("table dimensions must be positive, got %dx%d", rows, columns)
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Location: &docs.Location{Index: index},
			Rows:     rows,
			Columns:  columns,
		},
	})
}

// WriteTableCell replaces the text of one table cell. Table, row, and column
// are zero-based; tables are counted in document order.
func (c *Client) WriteTableCell(ctx context.Context, documentID string, tableIndex, row, column int64, text string) error {
	doc, err := c.get(ctx, documentID)
	if err != nil {
		return err
	}

	var table *docs.Table
	var seen int64
	for _, el := range doc.Body.Content {
		if el.Table == nil {
			continue
		}
		if seen == tableIndex {
			table = el.Table
			break
		}
		seen++
	}
	if table == nil {
		return fmt.Errorf("document %s has no table at index %d", documentID, tableIndex)
	}
	if row < 0 || row >= int64(len(table.TableRows)) {
		return fmt.Errorf("row %d out of range, table has %d row(s)", row, len(table.TableRows))
	}
	cells := table.TableRows[row].TableCells
	if column < 0 || column >= int64(len(cells)) {
		return fmt.Errorf("column %d out of range, row has %d cell(s)", column, len(cells))
	}
	cell := cells[column]

	// The cell's first character index is its start plus one; the final
	// newline at EndIndex-1 cannot be deleted.
	start := cell.StartIndex + 1
	end := cell.EndIndex - 1

	var requests []*docs.Request
	if end > start {
		requests = append(requests, &docs.Request{
			DeleteContentRange: &docs.DeleteContentRangeRequest{
				Range: &docs.Range{StartIndex: start, EndIndex: end},
			},
		})
	}
	if text != "" {
		requests = append(requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: start},
				Text:     text,
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	return c.batchUpdate(ctx, documentID, requests...)
}

// AddBookmark creates a named range collapsed at a character index, usable
// as a target for internal links. It returns the named range ID.
func (c *Client) AddBookmark(ctx context.Context, documentID, name string, index int64) (string, error) {
	if name == "" {
		return "", fmt.Errorf("bookmark needs a name")
	}
	if index < 1 {
		return "", fmt.Errorf("index must be at least 1, got %d", index)
	}
	res, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			CreateNamedRange: &docs.CreateNamedRangeRequest{
				Name:  name,
				Range: &docs.Range{StartIndex: index, EndIndex: index},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("add bookmark to %s: %w", documentID, err)
	}
	for _, reply := range res.Replies {
		if reply.CreateNamedRange != nil {
			return reply.CreateNamedRange.NamedRangeId, nil
		}
	}
	return "", fmt.Errorf("no named range in create reply")
}

// InsertImage inserts an image from a public URL at a character index.
// Width and height are in points; zero keeps the natural size.
func (c *Client) InsertImage(ctx context.Context, documentID string, index int64, imageURL string, width, height float64) error {
	req := &docs.InsertInlineImageRequest{
		Location: &docs.Location{Index: index},
		Uri:      imageURL,
	}
	if width > 0 && height > 0 {
		req.ObjectSize = &docs.Size{
			Width:  &docs.Dimension{Magnitude: width, Unit: "PT"},
			Height: &docs.Dimension{Magnitude: height, Unit: "PT"},
		}
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{InsertInlineImage: req})
}

// InsertPageBreak inserts a page break at a character index.
func (c *Client) InsertPageBreak(ctx context.Context, documentID string, index int64) error {
	return c.batchUpdate(ctx, documentID, &docs.Request{
		InsertPageBreak: &docs.InsertPageBreakRequest{
			Location: &docs.Location{Index: index},
		},
	})
}

// DeleteRange deletes the content in [start, end).
func (c *Client) DeleteRange(ctx context.Context, documentID string, start, end int64) error {
	if end <= start {
		return fmt.Errorf("invalid range [%d, %d)", start, end)
	}
	return c.batchUpdate(ctx, documentID, &docs.Request{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: start, EndIndex: end},
		},
	})
}

func (c *Client) get(ctx context.Context, documentID string) (*docs.Document, error) {
	doc, err := c.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests ...*docs.Request) error {
	_, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update document %s: %w", documentID, err)
	}
	return nil
}
