package catalog

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/mediacat/internal/config"
)

// Class is the extension classification of a file, before link-files are
// read.
type Class int

const (
	ClassGeneric Class = iota
	ClassVideo
	ClassAudio
	ClassImage
	ClassSubtitle
	ClassLink
)

type classTable struct {
	class Class
	exts  map[string]bool
}

// Classifier maps extensions to classes. Tables are checked in priority
// order video, audio, image, subtitle, link; the first match wins and
// anything else is generic.
type Classifier struct {
	tables []classTable
}

// NewClassifier builds a Classifier from the configured extension lists.
func NewClassifier(exts config.Extensions) Classifier {
	return Classifier{tables: []classTable{
		{ClassVideo, extSet(exts.Video)},
		{ClassAudio, extSet(exts.Audio)},
		{ClassImage, extSet(exts.Image)},
		{ClassSubtitle, extSet(exts.Subtitle)},
		{ClassLink, extSet(exts.Link)},
	}}
}

// Classify returns the class of a file name by its lowercased extension.
func (c Classifier) Classify(name string) Class {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ClassGeneric
	}
	for _, t := range c.tables {
		if t.exts[ext] {
			return t.class
		}
	}
	return ClassGeneric
}

func extSet(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, e := range list {
		m[strings.ToLower(e)] = true
	}
	return m
}
