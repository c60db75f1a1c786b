package catalog

import (
	"context"

	"github.com/backmassage/mediacat/internal/probe"
)

// Logger is the subset of the application logger used during enrichment.
type Logger interface {
	Debug(format string, args ...interface{})
}

// Enricher runs the post-scan stage over a scanned tree. Every step is
// best-effort: failures are logged at debug level and leave the entry as
// scanned.
type Enricher struct {
	Thumbs *Thumbnailer
	// Sniff enables MIME detection for generic files.
	Sniff bool
	// Prober, when set, is asked for metadata of video and audio files.
	Prober probe.Prober
	Log    Logger
}

// Enrich attaches thumbnails, sniffs MIME types and probes media. It stops
// probing early if ctx is cancelled.
func (en *Enricher) Enrich(ctx context.Context, nodes []Node) {
	if en.Thumbs != nil {
		en.Thumbs.Attach(nodes)
	}
	Walk(nodes, func(e *Entry) {
		if e.Asset == nil || e.Err != "" {
			return
		}
		switch e.Kind {
		case KindFile:
			if en.Sniff {
				e.Asset.MIME = sniffMIME(e.Asset.path)
			}
		case KindVideo, KindAudio:
			if en.Prober == nil || ctx.Err() != nil {
				return
			}
			info, err := en.Prober.Probe(ctx, e.Asset.path)
			if err != nil {
				en.debug("probe %s: %v", e.Asset.Local, err)
				return
			}
			e.Media = info
		}
	})
}

func (en *Enricher) debug(format string, args ...interface{}) {
	if en.Log != nil {
		en.Log.Debug(format, args...)
	}
}
