package intake

import "errors"

// ErrValidation marks failures caused by the uploaded files rather than by
// the service.
var ErrValidation = errors.New("validation failed")

const (
	msgMissingExcel    = "Please include an excel file."
	msgMissingAudios   = "Please include at least one audio file."
	msgExcelType       = "Please check the excel's file type."
	msgExcelName       = "Please check the excel's file name."
	msgAudioType       = "Please check the audio's file type: "
	msgAudioName       = "Please check the audio's file name: "
	msgExcelShape      = "Please make sure the first row of the excel is not empty and there are no other rows."
	msgAllAudiosFailed = "All audios failed processing."
	msgFileMissing     = "File doesn't exist"
)

// ValidationError carries a caller-facing message.
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(message string) error {
	return &ValidationError{Message: message}
}
