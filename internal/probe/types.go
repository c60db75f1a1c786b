package probe

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned by a prober that does not handle the given file.
var ErrUnsupported = errors.New("unsupported media file")

// MediaInfo holds the metadata attached to a catalog entry. Zero values mean
// "unknown". Bitrate is bits per second as reported by the prober.
type MediaInfo struct {
	Duration float64
	Width    int
	Height   int
	Bitrate  string
}

// Kbps returns the bitrate in kilobits per second, or 0 if unknown.
func (m *MediaInfo) Kbps() int64 {
	bps, err := strconv.ParseInt(m.Bitrate, 10, 64)
	if err != nil || bps <= 0 {
		return 0
	}
	return bps / 1000
}

// Prober reads metadata for one media file.
type Prober interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}
