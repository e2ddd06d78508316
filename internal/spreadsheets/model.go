package spreadsheets

import "time"

// Spreadsheet is an uploaded workbook's header, keyed by its sanitized filename.
type Spreadsheet struct {
	Filename  string    `json:"filename"`
	Fields    []string  `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
}
