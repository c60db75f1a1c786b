package catalog

import "strings"

// Locator turns project-relative paths into public locators.
type Locator struct {
	BaseURL string
}

// Public returns rel with forward slashes, prefixed by the base URL when one
// is configured. The join always has exactly one slash.
func (l Locator) Public(rel string) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if l.BaseURL == "" {
		return rel
	}
	return strings.TrimRight(l.BaseURL, "/") + "/" + strings.TrimLeft(rel, "/")
}
