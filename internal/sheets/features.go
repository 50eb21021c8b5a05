package sheets

import (
	"context"
	"fmt"
	"strings"

	sheets "google.golang.org/api/sheets/v4"
)

// MoveSheetTab moves a tab to a zero-based position among the tabs.
func (c *Client) MoveSheetTab(ctx context.Context, spreadsheetID, title string, index int64) error {
	if index < 0 {
		return fmt.Errorf("tab index must not be negative, got %d", index)
	}
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:         sheetID,
				Index:           index,
				ForceSendFields: []string{"Index"},
			},
			Fields: "index",
		},
	})
}

// CopyToSpreadsheet copies a tab into another spreadsheet and returns the new
// tab as it exists in the destination.
func (c *Client) CopyToSpreadsheet(ctx context.Context, spreadsheetID, title, destinationSpreadsheetID string) (*SheetTab, error) {
	sheetID, err := c.sheetID(ctx, spreadsheetID, title)
	if err != nil {
		return nil, err
	}
	props, err := c.svc.Spreadsheets.Sheets.CopyTo(spreadsheetID, sheetID, &sheets.CopySheetToAnotherSpreadsheetRequest{
		DestinationSpreadsheetId: destinationSpreadsheetID,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("copy sheet %q to %s: %w", title, destinationSpreadsheetID, err)
	}
	return &SheetTab{
		ID:     props.SheetId,
		Title:  props.Title,
		Index:  props.Index,
		Hidden: props.Hidden,
	}, nil
}

// AutoResizeColumns fits count columns to their content starting at the
// column letter.
func (c *Client) AutoResizeColumns(ctx context.Context, spreadsheetID, sheetName, column string, count int64) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: idx,
				EndIndex:   idx + count,
			},
		},
	})
}

// HideRows hides or shows count rows starting at the one-based row number.
func (c *Client) HideRows(ctx context.Context, spreadsheetID, sheetName string, row, count int64, hidden bool) error {
	return c.hideDimension(ctx, spreadsheetID, sheetName, "ROWS", row-1, count, hidden)
}

// HideColumns hides or shows count columns starting at the column letter.
func (c *Client) HideColumns(ctx context.Context, spreadsheetID, sheetName, column string, count int64, hidden bool) error {
	idx, err := columnIndex(column)
	if err != nil {
		return err
	}
	return c.hideDimension(ctx, spreadsheetID, sheetName, "COLUMNS", idx, count, hidden)
}

func (c *Client) hideDimension(ctx context.Context, spreadsheetID, sheetName, dimension string, start, count int64, hidden bool) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
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
			Properties: &sheets.DimensionProperties{
				HiddenByUser:    hidden,
				ForceSendFields: []string{"HiddenByUser"},
			},
			Fields: "hiddenByUser",
		},
	})
}

// CreateNamedRange names a range for use in formulas and references.
func (c *Client) CreateNamedRange(ctx context.Context, spreadsheetID, name string, r GridRange) error {
	if name == "" {
		return fmt.Errorf("named range needs a name")
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddNamedRange: &sheets.AddNamedRangeRequest{
			NamedRange: &sheets.NamedRange{Name: name, Range: gr},
		},
	})
}

// AddDataValidation restricts the range to a dropdown of allowed values.
// Strict rejects other input instead of flagging it.
func (c *Client) AddDataValidation(ctx context.Context, spreadsheetID string, r GridRange, values []string, strict bool) error {
	if len(values) == 0 {
		return fmt.Errorf("data validation needs at least one allowed value")
	}
	condition := &sheets.BooleanCondition{Type: "ONE_OF_LIST"}
	for _, v := range values {
		condition.Values = append(condition.Values, &sheets.ConditionValue{UserEnteredValue: v})
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{
			Range: gr,
			Rule: &sheets.DataValidationRule{
				Condition:    condition,
				ShowCustomUi: true,
				Strict:       strict,
			},
		},
	})
}

// AddConditionalFormat highlights cells in the range that match a condition,
// for example NUMBER_GREATER, NUMBER_LESS, or TEXT_CONTAINS.
func (c *Client) AddConditionalFormat(ctx context.Context, spreadsheetID string, r GridRange, conditionType, conditionValue, backgroundColor string) error {
	if conditionType == "" {
		return fmt.Errorf("condition type is required")
	}
	if backgroundColor == "" {
		backgroundColor = "#00FF00"
	}
	color, err := parseColor(backgroundColor)
	if err != nil {
		return err
	}
	condition := &sheets.BooleanCondition{Type: strings.ToUpper(conditionType)}
	if conditionValue != "" {
		condition.Values = []*sheets.ConditionValue{{UserEnteredValue: conditionValue}}
	}
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{gr},
				BooleanRule: &sheets.BooleanRule{
					Condition: condition,
					Format:    &sheets.CellFormat{BackgroundColor: color},
				},
			},
			ForceSendFields: []string{"Index"},
		},
	})
}

// AddNote attaches a note to one cell. Row and column are zero-based. An
// empty note clears any existing one.
func (c *Client) AddNote(ctx context.Context, spreadsheetID, sheetName string, row, column int64, note string) error {
	sheetID, err := c.sheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	cell := &sheets.CellData{Note: note}
	if note == "" {
		cell.ForceSendFields = []string{"Note"}
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    row,
				EndRowIndex:      row + 1,
				StartColumnIndex: column,
				EndColumnIndex:   column + 1,
			},
			Rows:   []*sheets.RowData{{Values: []*sheets.CellData{cell}}},
			Fields: "note",
		},
	})
}

// ProtectRange protects a range from edits. WarningOnly shows a warning
// instead of blocking the edit.
func (c *Client) ProtectRange(ctx context.Context, spreadsheetID string, r GridRange, description string, warningOnly bool) error {
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddProtectedRange: &sheets.AddProtectedRangeRequest{
			ProtectedRange: &sheets.ProtectedRange{
				Range:       gr,
				Description: description,
				WarningOnly: warningOnly,
			},
		},
	})
}

// CreateChart embeds a basic chart anchored at a cell. The first column of
// the data range is the domain; the remaining columns are the series.
func (c *Client) CreateChart(ctx context.Context, spreadsheetID, chartType, title string, data GridRange, anchorRow, anchorColumn int64) error {
	gr, err := c.gridRange(ctx, spreadsheetID, data)
	if err != nil {
		return err
	}
	spec, err := chartSpec(chartType, title, gr)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		AddChart: &sheets.AddChartRequest{
			Chart: &sheets.EmbeddedChart{
				Spec: spec,
				Position: &sheets.EmbeddedObjectPosition{
					OverlayPosition: &sheets.OverlayPosition{
						AnchorCell: &sheets.GridCoordinate{
							SheetId:     gr.SheetId,
							RowIndex:    anchorRow,
							ColumnIndex: anchorColumn,
						},
					},
				},
			},
		},
	})
}

// chartSpec builds a basic chart spec from a data range: domain from the
// first column, one series spanning the rest.
func chartSpec(chartType, title string, data *sheets.GridRange) (*sheets.ChartSpec, error) {
	if data.EndColumnIndex-data.StartColumnIndex < 2 {
		return nil, fmt.Errorf("chart data needs at least two columns, a domain and a series")
	}
	domain := *data
	domain.EndColumnIndex = data.StartColumnIndex + 1
	series := *data
	series.StartColumnIndex = data.StartColumnIndex + 1
	return &sheets.ChartSpec{
		Title: title,
		BasicChart: &sheets.BasicChartSpec{
			ChartType:      strings.ToUpper(chartType),
			LegendPosition: "RIGHT_LEGEND",
			Domains: []*sheets.BasicChartDomain{{
				Domain: &sheets.ChartData{
					SourceRange: &sheets.ChartSourceRange{Sources: []*sheets.GridRange{&domain}},
				},
			}},
			Series: []*sheets.BasicChartSeries{{
				Series: &sheets.ChartData{
					SourceRange: &sheets.ChartSourceRange{Sources: []*sheets.GridRange{&series}},
				},
			}},
		},
	}, nil
}

// CreateFilter sets the sheet's basic filter over the range.
func (c *Client) CreateFilter(ctx context.Context, spreadsheetID string, r GridRange) error {
	gr, err := c.gridRange(ctx, spreadsheetID, r)
	if err != nil {
		return err
	}
	return c.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		SetBasicFilter: &sheets.SetBasicFilterRequest{
			Filter: &sheets.BasicFilter{Range: gr},
		},
	})
}
