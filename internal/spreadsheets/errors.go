package spreadsheets

import "errors"

var (
	ErrNotFound      = errors.New("spreadsheet not found")
	ErrInvalidFormat = errors.New("invalid spreadsheet format")
	ErrInvalidShape  = errors.New("first row must be a non-empty header and the only populated row")
)
