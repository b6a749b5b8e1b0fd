package ingest

import (
	"mime"
	"path/filepath"
	"strings"
)

// AcceptAttr is the file-input filter offered to users: any image, .svg, .ico.
const AcceptAttr = "image/*,.svg,.ico"

// Accepts reports whether a file matches AcceptAttr. The filter is advisory:
// Ingest never rejects a file for failing it.
func Accepts(filename, contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "image/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg", ".ico":
		return true
	}
	return false
}
