package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/mediacat/internal/naming"
)

// Observer is notified once per file visited by a scan.
type Observer interface {
	Visited(rel string)
}

// Scanner walks a directory tree and classifies its files. A Scanner is
// used for one build; it is not safe for concurrent use.
type Scanner struct {
	classifier  Classifier
	locator     Locator
	projectRoot string
	assetsDir   string
	observer    Observer

	// active holds the resolved paths of the directories being descended,
	// so a symlink pointing back up the tree is not followed forever.
	active map[string]bool
}

// NewScanner returns a Scanner. projectRoot and assetsDir should be
// absolute; locators are relative to projectRoot and folder paths to
// assetsDir. observer may be nil.
func NewScanner(classifier Classifier, locator Locator, projectRoot, assetsDir string, observer Observer) *Scanner {
	return &Scanner{
		classifier:  classifier,
		locator:     locator,
		projectRoot: projectRoot,
		assetsDir:   assetsDir,
		observer:    observer,
		active:      make(map[string]bool),
	}
}

// ScanDirectory returns the classified contents of path, sorted by name.
// A missing or unreadable directory yields nil. Subdirectories that yield
// nothing are pruned.
func (s *Scanner) ScanDirectory(path string) []Node {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	if s.active[real] {
		return nil
	}
	s.active[real] = true
	defer delete(s.active, real)

	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	var nodes []Node
	for _, de := range dirents {
		full := filepath.Join(path, de.Name())
		st, err := os.Stat(full)
		if err != nil {
			nodes = append(nodes, s.unreadable(full, de.Name(), err))
			continue
		}
		switch {
		case st.IsDir():
			if sub := s.ScanDirectory(full); len(sub) > 0 {
				nodes = append(nodes, &Folder{Path: s.rel(s.assetsDir, full), Items: sub})
			}
		case st.Mode().IsRegular():
			nodes = append(nodes, s.scanFile(full, de.Name(), st.Size())...)
		default:
			err := errors.Errorf("not a regular file (%s)", st.Mode().Type())
			nodes = append(nodes, s.unreadable(full, de.Name(), err))
		}
	}
	return nodes
}

func (s *Scanner) scanFile(full, name string, size int64) []Node {
	local := s.rel(s.projectRoot, full)
	if s.observer != nil {
		s.observer.Visited(local)
	}

	switch s.classifier.Classify(name) {
	case ClassVideo:
		return []Node{s.asset(KindVideo, naming.NiceTitle(name), full, local, size)}
	case ClassAudio:
		return []Node{s.asset(KindAudio, naming.NiceTitle(name), full, local, size)}
	case ClassImage:
		return []Node{s.asset(KindImage, name, full, local, size)}
	case ClassSubtitle:
		return []Node{s.asset(KindSubtitle, name, full, local, size)}
	case ClassLink:
		return s.scanLinkFile(full, name, local, size)
	}
	e := s.asset(KindFile, naming.NiceTitle(name), full, local, size)
	e.Asset.Ext = strings.ToLower(filepath.Ext(name))
	return []Node{e}
}

// scanLinkFile emits one stream per URL found in the file, a single
// textfile when there are none, or a textfile carrying the read error.
func (s *Scanner) scanLinkFile(full, name, local string, size int64) []Node {
	title := naming.NiceTitle(name)
	data, err := os.ReadFile(full)
	if err != nil {
		e := s.asset(KindTextFile, title, full, local, size)
		e.Err = err.Error()
		return []Node{e}
	}

	urls := ExtractURLs(string(data))
	if len(urls) == 0 {
		return []Node{s.asset(KindTextFile, title, full, local, size)}
	}
	nodes := make([]Node, 0, len(urls))
	for i, u := range urls {
		t := title
		if len(urls) > 1 {
			t = fmt.Sprintf("%s #%d", title, i+1)
		}
		nodes = append(nodes, &Entry{
			Title:  t,
			Kind:   KindStream,
			Stream: &Stream{URL: u, SourceFile: local},
		})
	}
	return nodes
}

// unreadable records a directory entry that cannot be catalogued as a
// regular file, such as a dangling symlink or a FIFO, as a generic file
// carrying the error.
func (s *Scanner) unreadable(full, name string, err error) *Entry {
	local := s.rel(s.projectRoot, full)
	if s.observer != nil {
		s.observer.Visited(local)
	}
	e := s.asset(KindFile, naming.NiceTitle(name), full, local, 0)
	e.Asset.Ext = strings.ToLower(filepath.Ext(name))
	e.Err = err.Error()
	return e
}

func (s *Scanner) asset(kind Kind, title, full, local string, size int64) *Entry {
	return &Entry{
		Title: title,
		Kind:  kind,
		Asset: &Asset{
			File:  s.locator.Public(local),
			Local: local,
			Size:  size,
			path:  full,
		},
	}
}

// rel returns target relative to base with forward slashes, or target
// itself when no relative path exists.
func (s *Scanner) rel(base, target string) string {
	r, err := filepath.Rel(base, target)
	if err != nil {
		r = target
	}
	return filepath.ToSlash(r)
}
