package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var reSeparators = regexp.MustCompile(`[_\-]+`)

// NiceTitle turns a filename into a display title:
//
//	"My_Movie-2020.mp4" -> "My Movie 2020"
//
// Only the final extension is removed. A leading-dot name such as ".hidden"
// has no extension to strip.
func NiceTitle(name string) string {
	return strings.TrimSpace(reSeparators.ReplaceAllString(StripExt(name), " "))
}

// StripExt removes the final extension from a base name. The dot of a
// leading-dot name is not treated as an extension separator.
func StripExt(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
