package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/backmassage/mediacat/internal/catalog"
	"github.com/backmassage/mediacat/internal/naming"
)

// kindOrder fixes the order of the per-type summary line.
var kindOrder = []catalog.Kind{
	catalog.KindVideo, catalog.KindAudio, catalog.KindImage, catalog.KindSubtitle,
	catalog.KindStream, catalog.KindTextFile, catalog.KindFile,
}

// RunStats summarizes one build.
type RunStats struct {
	Output       string
	OutputBytes  int64
	Elapsed      time.Duration
	ProbeEnabled bool

	Folders    int
	Entries    int
	Files      int // entries backed by an on-disk file
	ByKind     map[catalog.Kind]int
	ByCategory map[naming.Category]int
	Errors     int
	Thumbs     int
	Bytes      int64

	Probed      int
	ProbeFailed int
}

// Collect fills the counters from a built catalog.
func (s *RunStats) Collect(cat *catalog.Catalog) {
	s.ByKind = make(map[catalog.Kind]int)
	s.ByCategory = make(map[naming.Category]int)
	for _, c := range naming.Categories {
		s.Folders += countFolders(cat.Group(c))
	}
	cat.Walk(func(c naming.Category, e *catalog.Entry) {
		s.Entries++
		s.ByKind[e.Kind]++
		s.ByCategory[c]++
		if e.Err != "" {
			s.Errors++
		}
		if e.Thumb != "" {
			s.Thumbs++
		}
		if e.Asset == nil {
			return
		}
		s.Files++
		s.Bytes += e.Asset.Size
		if !s.ProbeEnabled || e.Err != "" {
			return
		}
		switch {
		case e.Media != nil:
			s.Probed++
		case e.Kind == catalog.KindVideo || e.Kind == catalog.KindAudio:
			s.ProbeFailed++
		}
	})
}

// CategoryLine renders the per-category counts, e.g. "musicas 0, peliculas 3, ...".
func (s *RunStats) CategoryLine() string {
	parts := make([]string, 0, len(naming.Categories))
	for _, c := range naming.Categories {
		parts = append(parts, fmt.Sprintf("%s %d", c, s.ByCategory[c]))
	}
	return strings.Join(parts, ", ")
}

// KindLine renders the non-zero per-type counts, or "none".
func (s *RunStats) KindLine() string {
	var parts []string
	for _, k := range kindOrder {
		if n := s.ByKind[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func countFolders(nodes []catalog.Node) int {
	n := 0
	for _, node := range nodes {
		if f, ok := node.(*catalog.Folder); ok {
			n += 1 + countFolders(f.Items)
		}
	}
	return n
}
