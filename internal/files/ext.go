package files

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMimeType is served for allowed extensions missing from mimeTypes.
const DefaultMimeType = "image/jpeg"

// mimeTypes doubles as the extension allow-list.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
}

// IsImage reports whether name carries one of the supported image extensions.
// The comparison is case-insensitive.
func IsImage(name string) bool {
	_, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MimeType returns the content type for name based on its extension.
func MimeType(name string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok && mt != "" {
		return mt
	}
	return DefaultMimeType
}

// Extensions returns the allow-list without leading dots, sorted.
func Extensions() []string {
	out := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(out)
	return out
}
