package gitctx

import (
	"path"
	"strings"
)

// imageExtensions is the allow-list of file types the reviewer can display.
var imageExtensions = []string{"png", "jpg", "jpeg", "gif", "svg", "webp", "bmp", "ico"}

var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"ico":  "image/x-icon",
}

// IsImageFile reports whether p ends in a recognized image extension.
// The match is case-insensitive.
func IsImageFile(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// MIMEType returns the media type for p's extension, or
// application/octet-stream for anything outside the image allow-list.
func MIMEType(p string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}
