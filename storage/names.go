package storage

import (
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// ObjectName turns an uploaded file name into a stable object name:
// "Suite Vista Río.JPG" becomes "suite-vista-rio.jpg".
func ObjectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	return stem + ext
}
