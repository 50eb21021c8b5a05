package sheets

import (
	"context"
	"fmt"
	"strings"

	sheets "google.golang.org/api/sheets/v4"
)

// AddSheet adds a tab with the given title.
func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	})
}

// DeleteSheet deletes a tab by title.
func (c *Client) DeleteSheet(ctx context.Context, spreadsheetID, title string) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
	})
}

// RenameSheet renames a tab.
func (c *Client) RenameSheet(ctx context.Context, spreadsheetID, title, newTitle string) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{SheetId: sheetID, Title: newTitle},
			Fields:     "title",
		},
	})
}

// DuplicateSheet copies a tab within the same spreadsheet.
func (c *Client) DuplicateSheet(ctx context.Context, spreadsheetID, title, newTitle string) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		DuplicateSheet: &sheets.DuplicateSheetRequest{
			SourceSheetId: sheetID,
			NewSheetName:  newTitle,
		},
	})
}

// HideSheet hides or unhides a tab.
func (c *Client) HideSheet(ctx context.Context, spreadsheetID, title string, hidden bool) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:         sheetID,
				Hidden:          hidden,
				ForceSendFields: []string{"Hidden"},
			},
			Fields: "hidden",
		},
	})
}

// InsertRows inserts count empty rows before the one-based row number.
func (c *Client) InsertRows(ctx context.Context, spreadsheetID, sheetName string, row, count int64) error {
	return c.insertDimension(ctx, spreadsheetID, sheetName, "ROWS", row-1, count)
}

// InsertColumns inserts count empty columns before the column letter.
func (c *Client) InsertColumns(ctx context.Context, spreadsheetID, sheetName, column string, count int64) error {
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	return c.insertDimension(ctx, spreadsheetID, sheetName, "COLUMNS", idx, count)
}

// DeleteRows deletes count rows starting at the one-based row number.
func (c *Client) DeleteRows(ctx context.Context, spreadsheetID, sheetName string, row, count int64) error {
	return c.deleteDimension(ctx, spreadsheetID, sheetName, "ROWS", row-1, count)
}

// DeleteColumns deletes count columns starting at the column letter.
func (c *Client) DeleteColumns(ctx context.Context, spreadsheetID, sheetName, column string, count int64) error {
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	return c.deleteDimension(ctx, spreadsheetID, sheetName, "COLUMNS", idx, count)
}

func (c *Client) insertDimension(ctx context.Context, spreadsheetID, sheetName, dimension string, start, count int64) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  dimension,
				StartIndex: start,
				EndIndex:   start + count,
			},
		},
	})
}

func (c *Client) deleteDimension(ctx context.Context, spreadsheetID, sheetName, dimension string, start, count int64) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  dimension,
				StartIndex: start,
				EndIndex:   start + count,
			},
		},
	})
}

// ResizeRows sets the pixel height of count rows starting at the one-based
// row number.
func (c *Client) ResizeRows(ctx context.Context, spreadsheetID, sheetName string, row, count, pixelSize int64) error {
	return c.resizeDimension(ctx, spreadsheetID, sheetName, "ROWS", row-1, count, pixelSize)
}

// ResizeColumns sets the pixel width of count columns starting at the column
// letter.
func (c *Client) ResizeColumns(ctx context.Context, spreadsheetID, sheetName, column string, count, pixelSize int64) error {
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	return c.resizeDimension(ctx, spreadsheetID, sheetName, "COLUMNS", idx, count, pixelSize)
}

func (c *Client) resizeDimension(ctx context.Context, spreadsheetID, sheetName, dimension string, start, count, pixelSize int64) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	if pixelSize <= 0 {
		return fmt.Errorf("pixel size must be positive, got %d", pixelSize)
	}
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  dimension,
				StartIndex: start,
				EndIndex:   start + count,
			},
			Properties: &sheets.DimensionProperties{PixelSize: pixelSize},
			Fields:     "pixelSize",
		},
	})
}

// GridRange addresses a rectangle of cells with zero-based, half-open
// bounds.
type GridRange struct {
	SheetName   string
	StartRow    int64
	EndRow      int64
	StartColumn int64
	EndColumn   int64
}

func (c *Client) gridRange(ctx context.Context, spreadsheetID string, r GridRange) (*sheets.GridRange, error) {
	sheetID, err := c.sheetID(ctx, spreadsheetID, r.SheetName)
	if err != nil {
		return nil, err
	}
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    r.StartRow,
		EndRowIndex:      r.EndRow,
		StartColumnIndex: r.StartColumn,
		EndColumnIndex:   r.EndColumn,
	}, nil
}

// MergeCells merges the range into one cell. MergeType is MERGE_ALL,
// MERGE_COLUMNS, or MERGE_ROWS.
func (c *Client) MergeCells(ctx context.Context, spreadsheetID string, r GridRange, mergeType string) error {
	if mergeType == "" {
		mergeType = "MERGE_ALL"
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		MergeCells: &sheets.MergeCellsRequest{Range: gr, MergeType: mergeType},
	})
}

// UnmergeCells splits any merges overlapping the range.
func (c *Client) UnmergeCells(ctx context.Context, spreadsheetID string, r GridRange) error {
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UnmergeCells: &sheets.UnmergeCellsRequest{Range: gr},
	})
}

// SetBorders draws a uniform border around and through the range. Style is
// SOLID, SOLID_MEDIUM, SOLID_THICK, DASHED, DOTTED, or DOUBLE.
func (c *Client) SetBorders(ctx context.Context, spreadsheetID string, r GridRange, style, colorHex string) error {
	if style == "" {
		style = "SOLID"
	}
	border := &sheets.Border{Style: style}
	if colorHex != "" {
		color, err := parseColor(colorHex)
		if err != nil {
			return err
		}
		border.Color = color
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateBorders: &sheets.UpdateBordersRequest{
			Range:           gr,
			Top:             border,
			Bottom:          border,
			Left:            border,
			Right:           border,
			InnerHorizontal: border,
			InnerVertical:   border,
		},
	})
}

// CellFormat describes cell-level formatting. Nil or empty fields are left
// unchanged.
type CellFormat struct {
	Bold            *bool
	Italic          *bool
	FontSize        *int64
	BackgroundColor string // #RRGGBB
	TextColor       string // #RRGGBB
	NumberFormat    string // a Sheets number format pattern like "#,##0.00"
	HorizontalAlign string // LEFT, CENTER, RIGHT
}

// FormatCells applies formatting to the range.
func (c *Client) FormatCells(ctx context.Context, spreadsheetID string, r GridRange, format CellFormat) error {
	cell := &sheets.CellFormat{TextFormat: &sheets.TextFormat{}}
	var fields []string

	if format.Bold != nil {
		cell.TextFormat.Bold = *format.Bold
		fields = append(fields, "userEnteredFormat.textFormat.bold")
	}
	if format.Italic != nil {
		cell.TextFormat.Italic = *format.Italic
		fields = append(fields, "userEnteredFormat.textFormat.italic")
	}
	if format.FontSize != nil {
		cell.TextFormat.FontSize = *format.FontSize
		fields = append(fields, "userEnteredFormat.textFormat.fontSize")
	}
	if format.TextColor != "" {
		color, err := parseColor(format.TextColor)
		if err != nil {
			return err
		}
		cell.TextFormat.ForegroundColor = color
		fields = append(fields, "userEnteredFormat.textFormat.foregroundColor")
	}
	if format.BackgroundColor != "" {
		color, err := parseColor(format.BackgroundColor)
		if err != nil {
			return err
		}
		cell.BackgroundColor = color
		fields = append(fields, "userEnteredFormat.backgroundColor")
	}
	if format.NumberFormat != "" {
		cell.NumberFormat = &sheets.NumberFormat{Type: "NUMBER", Pattern: format.NumberFormat}
		fields = append(fields, "userEnteredFormat.numberFormat")
	}
	if format.HorizontalAlign != "" {
		cell.HorizontalAlignment = strings.ToUpper(format.HorizontalAlign)
		fields = append(fields, "userEnteredFormat.horizontalAlignment")
	}
	if len(fields) == 0 {
		return fmt.Errorf("no formatting fields given")
	}

	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  gr,
			Cell:   &sheets.CellData{UserEnteredFormat: cell},
			Fields: strings.Join(fields, ","),
		},
	})
}

// SortRange sorts the range by a column. Column is a letter relative to the
// whole sheet.
func (c *Client) SortRange(ctx context.Context, spreadsheetID string, r GridRange, column string, descending bool) error {
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	order := "ASCENDING"
	if descending {
		order = "DESCENDING"
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		SortRange: &sheets.SortRangeRequest{
			Range: gr,
			SortSpecs: []*sheets.SortSpec{
				{DimensionIndex: idx, SortOrder: order},
			},
		},
	})
}

// FreezePanes freezes the first rows and columns of a tab. Zero unfreezes
// that dimension.
func (c *Client) FreezePanes(ctx context.Context, spreadsheetID, sheetName string, rows, columns int64) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheetID,
				GridProperties: &sheets.GridProperties{
					FrozenRowCount:    rows,
					FrozenColumnCount: columns,
				},
			},
			Fields: "gridProperties.frozenRowCount,gridProperties.frozenColumnCount",
		},
	})
}

// CopyPaste copies a range onto a destination anchored at the destination
// range's top left. PasteType is PASTE_NORMAL, PASTE_VALUES, or
// PASTE_FORMAT.
func (c *Client) CopyPaste(ctx context.Context, spreadsheetID string, source, destination GridRange, pasteType string) error {
	if pasteType == "" {
		pasteType = "PASTE_NORMAL"
	}
	src, err := c.gridRange(ctx, spreadsheetID, source)
	if err != nil {
		return err
	}
	dst, err := c.gridRange(ctx, spreadsheetID, destination)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		CopyPaste: &sheets.CopyPasteRequest{
			Source:      src,
			Destination: dst,
			PasteType:   pasteType,
		},
	})
}
