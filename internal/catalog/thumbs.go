package catalog

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/backmassage/mediacat/internal/naming"
)

// Thumbnailer attaches thumbnails to on-disk entries. For an entry at
// dir/name.ext it looks for an image dir/<thumbsDir>/name.<image ext>,
// matching names case-insensitively; otherwise it uses the fallback
// thumbnail if that file exists. Listings are cached per directory for the
// lifetime of the Thumbnailer.
type Thumbnailer struct {
	projectRoot string
	thumbsDir   string
	images      map[string]bool
	locator     Locator
	fallback    string

	cache map[string]map[string]string
}

// NewThumbnailer returns a Thumbnailer. defaultThumb is the filesystem path
// of the fallback image; it is checked once, and an empty or missing path
// disables the fallback.
func NewThumbnailer(projectRoot, thumbsDir string, imageExts []string, locator Locator, defaultThumb string) *Thumbnailer {
	t := &Thumbnailer{
		projectRoot: projectRoot,
		thumbsDir:   thumbsDir,
		images:      extSet(imageExts),
		locator:     locator,
		cache:       make(map[string]map[string]string),
	}
	if defaultThumb != "" {
		if st, err := os.Stat(defaultThumb); err == nil && st.Mode().IsRegular() {
			if rel, err := filepath.Rel(projectRoot, defaultThumb); err == nil {
				t.fallback = locator.Public(filepath.ToSlash(rel))
			}
		}
	}
	return t
}

// Attach sets Thumb on every asset entry under nodes and returns how many
// entries received one. Folder structure is left untouched.
func (t *Thumbnailer) Attach(nodes []Node) int {
	n := 0
	Walk(nodes, func(e *Entry) {
		if e.Asset == nil {
			return
		}
		if thumb := t.lookup(e.Asset.Local); thumb != "" {
			e.Thumb = thumb
			n++
		}
	})
	return n
}

func (t *Thumbnailer) lookup(local string) string {
	dir := path.Dir(local)
	key := strings.ToLower(naming.StripExt(path.Base(local)))
	if thumb, ok := t.listing(dir)[key]; ok {
		return thumb
	}
	return t.fallback
}

// listing returns the cached name-to-locator map of dir's thumbs folder.
// A missing folder caches as an empty map.
func (t *Thumbnailer) listing(dir string) map[string]string {
	if m, ok := t.cache[dir]; ok {
		return m
	}
	m := make(map[string]string)
	t.cache[dir] = m

	thumbsRel := path.Join(dir, t.thumbsDir)
	dirents, err := os.ReadDir(filepath.Join(t.projectRoot, filepath.FromSlash(thumbsRel)))
	if err != nil {
		return m
	}
	for _, de := range dirents {
		if de.IsDir() || !t.images[strings.ToLower(filepath.Ext(de.Name()))] {
			continue
		}
		key := strings.ToLower(naming.StripExt(de.Name()))
		if _, dup := m[key]; dup {
			continue
		}
		m[key] = t.locator.Public(path.Join(thumbsRel, de.Name()))
	}
	return m
}
