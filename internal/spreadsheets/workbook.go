package spreadsheets

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"audiofields-backend/internal/analyses"
)

// MIMEType is the content type of xlsx workbooks.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is one spreadsheet column prepared for display.
type Column struct {
	Header string   `json:"header"`
	Values []string `json:"values"`
}

// Workbook is a loaded xlsx file bound to its active sheet.
type Workbook struct {
	file  *excelize.File
	sheet string
}

// Load parses an xlsx stream and selects the active sheet.
func Load(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			_ = f.Close()
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidFormat)
		}
		sheet = sheets[0]
	}
	return &Workbook{file: f, sheet: sheet}, nil
}

// Sheet is the name of the active sheet.
func (w *Workbook) Sheet() string {
	return w.sheet
}

func (w *Workbook) rows() ([][]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", w.sheet, err)
	}
	return rows, nil
}

// Fields returns the header row. The sheet must contain exactly one
// populated row and every header cell must be non-blank.
func (w *Workbook) Fields() ([]string, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 || len(rows[0]) == 0 {
		return nil, ErrInvalidShape
	}
	fields := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		if strings.TrimSpace(cell) == "" {
			return nil, ErrInvalidShape
		}
		fields[i] = cell
	}
	return fields, nil
}

// FormattedContent returns, per column, the header and the non-empty values
// below it.
func (w *Workbook) FormattedContent() ([]Column, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Column{}, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]Column, width)
	for i := range columns {
		if i < len(rows[0]) {
			columns[i].Header = rows[0][i]
		}
		columns[i].Values = []string{}
		for _, row := range rows[1:] {
			if i < len(row) && row[i] != "" {
				columns[i].Values = append(columns[i].Values, row[i])
			}
		}
	}
	return columns, nil
}

// Populate writes each field's values down the field's column. All columns
// start on the row after the last populated row at the time of the call.
func (w *Workbook) Populate(matches analyses.FieldMatches) error {
	rows, err := w.rows()
	if err != nil {
		return err
	}
	start := len(rows) + 1

	for col, m := range matches {
		for i, value := range m.Values {
			cell, err := excelize.CoordinatesToCellName(col+1, start+i)
			if err != nil {
				return err
			}
			if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}
	return nil
}

// Bytes serializes the workbook.
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
