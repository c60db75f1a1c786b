package catalog

import "github.com/backmassage/mediacat/internal/probe"

// Kind is the wire value of an entry's "type" field.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindImage    Kind = "image"
	KindSubtitle Kind = "subtitle"
	KindStream   Kind = "stream"
	KindTextFile Kind = "textfile"
	KindFile     Kind = "file"
)

// Node is either an *Entry or a *Folder.
type Node interface {
	isNode()
}

// Entry is one leaf item. Exactly one of Asset and Stream is set: on-disk
// files carry an Asset, URLs found in link-files carry a Stream.
type Entry struct {
	Title  string
	Kind   Kind
	Asset  *Asset
	Stream *Stream

	Thumb string
	// Err is set on a textfile whose link-file could not be read, or on a
	// file whose metadata could not be read.
	Err   string
	Media *probe.MediaInfo
}

// Asset locates an on-disk file.
type Asset struct {
	File  string // public locator
	Local string // relative to the project root, forward slashes
	Size  int64
	Ext   string // generic files only
	MIME  string // generic files only, sniffed from content

	path string
}

// Stream is a URL extracted from a link-file.
type Stream struct {
	URL        string
	SourceFile string // link-file path relative to the project root
}

// Folder groups the entries of a non-empty subdirectory. Path is relative to
// the assets directory.
type Folder struct {
	Path  string `json:"folder"`
	Items []Node `json:"items"`
}

func (*Entry) isNode()  {}
func (*Folder) isNode() {}

// wireEntry fixes the JSON field order and omission rules.
type wireEntry struct {
	Title      string   `json:"title"`
	Type       Kind     `json:"type"`
	File       string   `json:"file,omitempty"`
	Local      string   `json:"local,omitempty"`
	URL        string   `json:"url,omitempty"`
	SourceFile string   `json:"sourceFile,omitempty"`
	Ext        string   `json:"ext,omitempty"`
	MIME       string   `json:"mime,omitempty"`
	Size       *int64   `json:"size,omitempty"`
	Thumb      string   `json:"thumb,omitempty"`
	Error      string   `json:"error,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	Bitrate    string   `json:"bitrate,omitempty"`
}

// MarshalJSON renders the entry in the renderer's wire shape. Streams never
// carry a size.
func (e *Entry) MarshalJSON() ([]byte, error) {
	w := wireEntry{
		Title: e.Title,
		Type:  e.Kind,
		Thumb: e.Thumb,
		Error: e.Err,
	}
	switch {
	case e.Asset != nil:
		size := e.Asset.Size
		w.File = e.Asset.File
		w.Local = e.Asset.Local
		w.Ext = e.Asset.Ext
		w.MIME = e.Asset.MIME
		w.Size = &size
	case e.Stream != nil:
		w.URL = e.Stream.URL
		w.SourceFile = e.Stream.SourceFile
	}
	if m := e.Media; m != nil {
		d := m.Duration
		w.Duration = &d
		w.Width = m.Width
		w.Height = m.Height
		w.Bitrate = m.Bitrate
	}
	return encode(w)
}

// Walk calls fn for every entry in nodes, descending into folders in order.
func Walk(nodes []Node, fn func(*Entry)) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Entry:
			fn(n)
		case *Folder:
			Walk(n.Items, fn)
		}
	}
}
