package sheets

import (
	"math"
	"testing"

	sheets "google.golang.org/api/sheets/v4"
)

func TestToSpreadsheet(t *testing.T) {
	ss := toSpreadsheet(&sheets.Spreadsheet{
		SpreadsheetId: "sheet-1",
		Properties:    &sheets.SpreadsheetProperties{Title: "Budget"},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					Title:   "Q1",
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
			{
				Properties: &sheets.SheetProperties{SheetId: 77, Title: "Q2", Index: 1},
			},
		},
	})

	if ss.ID != "sheet-1" || ss.Title != "Budget" {
		t.Errorf("spreadsheet = %+v", ss)
	}
	if len(ss.Sheets) != 2 {
		t.Fatalf("got %d tabs", len(ss.Sheets))
	}
	if ss.Sheets[0].RowCount != 1000 || ss.Sheets[0].ColumnCount != 26 {
		t.Errorf("grid = %+v", ss.Sheets[0])
	}
	if ss.Sheets[1].ID != 77 || ss.Sheets[1].Index != 1 {
		t.Errorf("tab = %+v", ss.Sheets[1])
	}
	if ss.URL != "https://docs.google.com/spreadsheets/d/sheet-1/edit" {
		t.Errorf("url = %q", ss.URL)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF8000")
	if err != nil {
		t.Fatalf("parseColor: %v", err)
	}
	if c.Red != 1 {
		t.Errorf("red = %v", c.Red)
	}
	if math.Abs(c.Green-128.0/255) > 1e-9 {
		t.Errorf("green = %v", c.Green)
	}
	if c.Blue != 0 {
		t.Errorf("blue = %v", c.Blue)
	}

	if _, err := parseColor("red"); err == nil {
		t.Error("expected error for named color")
	}
	if _, err := parseColor("#FFF"); err == nil {
		t.Error("expected error for short hex")
	}
	if _, err := parseColor("#GGGGGG"); err == nil {
		t.Error("expected error for non-hex digits")
	}
}

func TestParseColorWithoutHash(t *testing.T) {
	c, err := parseColor("000000")
	if err != nil {
		t.Fatalf("parseColor: %v", err)
	}
	if c.Red != 0 || c.Green != 0 || c.Blue != 0 {
		t.Errorf("color = %+v", c)
	}
}

func TestChartSpec(t *testing.T) {
	data := &sheets.GridRange{
		SheetId:          7,
		StartRowIndex:    0,
		EndRowIndex:      10,
		StartColumnIndex: 2,
		EndColumnIndex:   5,
	}
	spec, err := chartSpec("column", "Sales", data)
	if err != nil {
		t.Fatalf("chartSpec: %v", err)
	}
	if spec.Title != "Sales" || spec.BasicChart.ChartType != "COLUMN" {
		t.Errorf("spec = %+v", spec)
	}
	if len(spec.BasicChart.Domains) != 1 || len(spec.BasicChart.Series) != 1 {
		t.Fatalf("domains/series = %d/%d", len(spec.BasicChart.Domains), len(spec.BasicChart.Series))
	}
	domain := spec.BasicChart.Domains[0].Domain.SourceRange.Sources[0]
	if domain.StartColumnIndex != 2 || domain.EndColumnIndex != 3 {
		t.Errorf("domain columns = [%d, %d)", domain.StartColumnIndex, domain.EndColumnIndex)
	}
	series := spec.BasicChart.Series[0].Series.SourceRange.Sources[0]
	if series.StartColumnIndex != 3 || series.EndColumnIndex != 5 {
		t.Errorf("series columns = [%d, %d)", series.StartColumnIndex, series.EndColumnIndex)
	}
	if domain.SheetId != 7 || series.EndRowIndex != 10 {
		t.Errorf("ranges lost sheet or rows: domain=%+v series=%+v", domain, series)
	}

	narrow := &sheets.GridRange{StartColumnIndex: 0, EndColumnIndex: 1}
	if _, err := chartSpec("line", "", narrow); err == nil {
		t.Error("expected error for single-column data")
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		col     string
		want    int64
		wantErr bool
	}{
		{"A", 0, false},
		{"Z", 25, false},
		{"AA", 26, false},
		{"AB", 27, false},
		{"b", 1, false},
		{" C ", 2, false},
		{"", 0, true},
		{"A1", 0, true},
	}
	for _, tt := range tests {
		got, err := columnIndex(tt.col)
		if tt.wantErr {
			if err == nil {
				t.Errorf("columnIndex(%q): expected error", tt.col)
			}
			continue
		}
		if err != nil {
			t.Errorf("columnIndex(%q): %v", tt.col, err)
			continue
		}
		if got != tt.want {
			t.Errorf("columnIndex(%q) = %d, want %d", tt.col, got, tt.want)
		}
	}
}
