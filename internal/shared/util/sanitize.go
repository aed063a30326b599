package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameLen = 120

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe for use in an object key:
// separators and whitespace become "_", control characters are dropped, and
// long names are shortened while keeping the extension. Traversal is rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := path.Ext(s)
		if len(ext) > 16 {
			ext = ""
		}
		s = strings.ToValidUTF8(s[:maxFileNameLen-len(ext)], "") + ext
	}
	return s, nil
}
