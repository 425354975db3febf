package sheetsclient

import (
	"fmt"
)

// headerRow is the sheet row holding column titles; rows above it are left blank
const headerRow = 3

// PublishedRotaRow is one day of a published rota
type PublishedRotaRow struct {
	Day     int      // 1-based day of the rotation
	Date    string   // Format: "Mon Jan 02 2006"
	Interns []string // one entry per shift column
}

// PublishedRota is a schedule laid out for a sheet: one row per day, one column per shift
type PublishedRota struct {
	RunID  string
	Title  string
	Shifts []string
	Rows   []PublishedRotaRow
}

// PublishRota writes a rota to the tab named after its title, creating the tab if needed.
// On an existing tab the Day, Date and shift columns are overwritten while any columns
// to their right (notes, swaps) keep their values.
func (c *Client) PublishRota(spreadsheetID string, rota *PublishedRota) error {
	exists, err := c.HasSheet(spreadsheetID, rota.Title)
	if err != nil {
		return err
	}

	var existing [][]interface{}
	if exists {
		existing, err = c.GetValues(spreadsheetID, fmt.Sprintf("%s!A1:ZZ", rota.Title))
		if err != nil {
			return fmt.Errorf("failed to read existing tab data: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, rota.Title); err != nil {
		return err
	}

	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("%s!A1", rota.Title), buildRotaValues(rota, existing)); err != nil {
		return fmt.Errorf("failed to write rota tab: %w", err)
	}

	return nil
}

// buildRotaValues lays out the tab contents, carrying over extra columns from existing
func buildRotaValues(rota *PublishedRota, existing [][]interface{}) [][]interface{} {
	managed := 2 + len(rota.Shifts)

	header := []interface{}{"Day", "Date"}
	for _, s := range rota.Shifts {
		header = append(header, s)
	}
	header = append(header, extraCells(existing, headerRow-1, managed)...)

	values := make([][]interface{}, 0, headerRow+len(rota.Rows))
	for i := 0; i < headerRow-1; i++ {
		values = append(values, []interface{}{})
	}
	values = append(values, header)

	for i, row := range rota.Rows {
		sheetRow := []interface{}{row.Day, row.Date}
		for s := range rota.Shifts {
			if s < len(row.Interns) {
				sheetRow = append(sheetRow, row.Interns[s])
			} else {
				sheetRow = append(sheetRow, "")
			}
		}
		sheetRow = append(sheetRow, extraCells(existing, headerRow+i, managed)...)
		values = append(values, sheetRow)
	}

	return values
}

// extraCells returns the cells of existing[row] beyond the managed columns
func extraCells(existing [][]interface{}, row, managed int) []interface{} {
	if row >= len(existing) || len(existing[row]) <= managed {
		return nil
	}
	return existing[row][managed:]
}
