package sheets

import (
	"context"
	"fmt"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Sheets service for one account.
type Client struct {
	svc     *sheets.Service
	account string
}

// NewClient creates a Sheets client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := sheets.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Sheets service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// CreateSpreadsheet creates a spreadsheet with the given title and optional
// initial tab names.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, tabNames []string) (*Spreadsheet, error) {
	ss := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range tabNames {
		ss.Sheets = append(ss.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}
	created, err := c.svc.Spreadsheets.Create(ss).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet %q: %w", title, err)
	}
	result := toSpreadsheet(created)
	return &result, nil
}

// GetSpreadsheet retrieves spreadsheet metadata including its tabs.
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*Spreadsheet, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, err)
	}
	result := toSpreadsheet(ss)
	return &result, nil
}

// ReadValues reads cell values from an A1 range, for example "Sheet1!A1:C10".
func (c *Client) ReadValues(ctx context.Context, spreadsheetID, a1Range string) ([][]any, error) {
	res, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", a1Range, spreadsheetID, err)
	}
	return res.Values, nil
}

// WriteValues overwrites cell values starting at the top left of the A1
// range. It returns the number of cells updated.
func (c *Client) WriteValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) (int64, error) {
	res, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, a1Range, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("write %s to %s: %w", a1Range, spreadsheetID, err)
	}
	return res.UpdatedCells, nil
}

// AppendValues appends rows after the last row of data in the range's sheet.
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) (int64, error) {
	res, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, a1Range, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s in %s: %w", a1Range, spreadsheetID, err)
	}
	if res.Updates == nil {
		return 0, nil
	}
	return res.Updates.UpdatedCells, nil
}

// ClearValues clears cell values in an A1 range, leaving formatting intact.
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, a1Range string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, a1Range, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s in %s: %w", a1Range, spreadsheetID, err)
	}
	return nil
}

// FindReplace replaces occurrences of find across the spreadsheet or one
// tab. It returns the number of occurrences changed.
func (c *Client) FindReplace(ctx context.Context, spreadsheetID, find, replace string, sheetName string, matchCase bool) (int64, error) {
	req := &sheets.FindReplaceRequest{
		Find:        find,
		Replacement: replace,
		MatchCase:   matchCase,
	}
	if sheetName == "" {
		req.AllSheets = true
	} else {
		sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
		if err != nil {
			return 0, err
		}
		req.SheetId = sheetID
	}

	res, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{FindReplace: req}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("find-replace in %s: %w", spreadsheetID, err)
	}
	var changed int64
	for _, reply := range res.Replies {
		if reply.FindReplace != nil {
			changed += reply.FindReplace.OccurrencesChanged
		}
	}
	return changed, nil
}

// sheetID resolves a tab title to its numeric sheet ID.
func (c *Client) sheetID(ctx context.Context, spreadsheetID, sheetName string) (int64, error) {
	ss, err := c.GetSpreadsheet(ctx, spreadsheetID)
	if err != nil {
		return 0, err
	}
	for _, tab := range ss.Sheets {
		if tab.Title == sheetName {
			return tab.ID, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in %s", sheetName, spreadsheetID)
}

func (c *Client) batchUpdate(ctx context.Context, spreadsheetID string, requests ...*sheets.Request) error {
	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update spreadsheet %s: %w", spreadsheetID, err)
	}
	return nil
}
