package audios

import "time"

// Audio is a transcribed upload, keyed by its sanitized filename.
type Audio struct {
	Filename      string    `json:"filename"`
	Transcription string    `json:"transcription"`
	ContentSHA256 string    `json:"content_sha256,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
