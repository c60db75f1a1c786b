package catalog

import (
	"regexp"
	"strings"
)

var reURL = regexp.MustCompile(`(?i)https?://[^\s"'<>\])]+`)

// ExtractURLs returns the http(s) URLs in text, trailing quotes, commas and
// semicolons stripped, deduplicated in first-seen order.
func ExtractURLs(text string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, m := range reURL.FindAllString(text, -1) {
		u := strings.TrimRight(m, `"',;`)
		if hostless(u) || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// hostless reports whether u is nothing but a scheme, e.g. "http://".
func hostless(u string) bool {
	i := strings.Index(u, "://")
	return i < 0 || i+3 == len(u)
}
