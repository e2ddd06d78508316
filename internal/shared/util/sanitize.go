package util

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidFileName is returned when nothing usable is left after sanitizing.
var ErrInvalidFileName = errors.New("invalid file name")

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFileName reduces name to a flat, ASCII-only file name that is safe to
// use as a storage key. Path separators become word breaks, whitespace runs are
// joined with "_", anything outside [A-Za-z0-9_.-] is dropped and leading or
// trailing dots and underscores are trimmed. The same input always yields the
// same key, so records stored under it stay reachable.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	s := strings.Join(strings.Fields(b.String()), "_")
	s = unsafeFileChars.ReplaceAllString(s, "")
	s = strings.Trim(s, "._")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
