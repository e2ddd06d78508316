package intake

import "strings"

// Upload is one file taken from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	audioMIMEPrefix       = "audio"
	spreadsheetMIMEPrefix = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	audioExtensions       = []string{".mp3", ".wav", ".flac", ".ogg", ".m4a"}
	spreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}
)

// IsAudio checks the filename extension and the declared content type. The
// bytes are not inspected.
func IsAudio(u Upload) bool {
	return isType(u, audioExtensions, audioMIMEPrefix)
}

// IsSpreadsheet checks the filename extension and the declared content type.
func IsSpreadsheet(u Upload) bool {
	return isType(u, spreadsheetExtensions, spreadsheetMIMEPrefix)
}

func isType(u Upload, extensions []string, mimePrefix string) bool {
	if !strings.HasPrefix(strings.TrimSpace(u.ContentType), mimePrefix) {
		return false
	}
	name := strings.ToLower(u.Filename)
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
