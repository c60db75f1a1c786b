package catalog

import "github.com/h2non/filetype"

// sniffMIME returns the MIME type detected from the file's leading bytes,
// or "" when the content is not recognized.
func sniffMIME(path string) string {
	match, err := filetype.MatchFile(path)
	if err != nil {
		return ""
	}
	return match.MIME.Value
}
