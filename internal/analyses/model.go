package analyses

import "time"

// Analysis is one matched value for one spreadsheet field, extracted from one audio.
type Analysis struct {
	ID            string    `json:"id"`
	AudioFilename string    `json:"audio_filename"`
	ExcelFilename string    `json:"excel_filename"`
	Field         string    `json:"field"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
}
