package sheets

import (
	"fmt"
	"strconv"
	"strings"

	sheets "google.golang.org/api/sheets/v4"
)

// Spreadsheet is the metadata view of a spreadsheet.
type Spreadsheet struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	URL    string     `json:"url"`
	Sheets []SheetTab `json:"sheets,omitempty"`
}

// SheetTab is one tab within a spreadsheet.
type SheetTab struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Index       int64  `json:"index"`
	RowCount    int64  `json:"rowCount,omitempty"`
	ColumnCount int64  `json:"columnCount,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

func spreadsheetURL(spreadsheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID + "/edit"
}

func toSpreadsheet(s *sheets.Spreadsheet) Spreadsheet {
	if s == nil {
		return Spreadsheet{}
	}
	out := Spreadsheet{
		ID:  s.SpreadsheetId,
		URL: spreadsheetURL(s.SpreadsheetId),
	}
	if s.Properties != nil {
		out.Title = s.Properties.Title
	}
	for _, sh := range s.Sheets {
		if sh.Properties == nil {
			continue
		}
		tab := SheetTab{
			ID:     sh.Properties.SheetId,
			Title:  sh.Properties.Title,
			Index:  sh.Properties.Index,
			Hidden: sh.Properties.Hidden,
		}
		if g := sh.Properties.GridProperties; g != nil {
			tab.RowCount = g.RowCount
			tab.ColumnCount = g.ColumnCount
		}
		out.Sheets = append(out.Sheets, tab)
	}
	return out
}

// parseColor converts a #RRGGBB hex string into an API color.
func parseColor(hex string) (*sheets.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q, expected #RRGGBB", hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return &sheets.Color{
		Red:   float64(n>>16&0xff) / 255,
		Green: float64(n>>8&0xff) / 255,
		Blue:  float64(n&0xff) / 255,
	}, nil
}

// columnIndex converts a column letter like "A" or "AB" to its zero-based
// index.
func columnIndex(col string) (int64, error) {
	col = strings.ToUpper(strings.TrimSpace(col))
	if col == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	var n int64
	for _, r := range col {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", col)
		}
		n = n*26 + int64(r-'A'+1)
	}
	return n - 1, nil
}
