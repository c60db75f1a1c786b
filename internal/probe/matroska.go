package probe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/remko/go-mkvparse"
)

// defaultTimecodeScale is the Matroska default: one tick per millisecond.
const defaultTimecodeScale = 1000000

var matroskaExts = map[string]bool{
	".mkv":  true,
	".webm": true,
	".mka":  true,
}

// Matroska reads duration and video dimensions from the segment header of
// Matroska and WebM files without an external binary. Bitrate is derived
// from file size and duration.
type Matroska struct{}

// Probe parses the header of path. Files with other extensions get
// ErrUnsupported.
func (Matroska) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	if !matroskaExts[strings.ToLower(filepath.Ext(path))] {
		return nil, ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := &mkvHandler{}
	if err := mkvparse.ParsePath(path, h); err != nil {
		return nil, errors.Wrapf(err, "parse matroska %q", path)
	}
	info := h.info()
	if info.Duration <= 0 {
		return nil, errors.Errorf("no duration in matroska header of %q", path)
	}
	if st, err := os.Stat(path); err == nil && st.Size() > 0 {
		info.Bitrate = strconv.FormatInt(int64(float64(st.Size())*8/info.Duration), 10)
	}
	return info, nil
}

// mkvHandler collects the few header elements we need and skips clusters
// and cues so the media payload is never decoded.
type mkvHandler struct {
	duration float64
	scale    int64
	width    int64
	height   int64
}

func (h *mkvHandler) info() *MediaInfo {
	scale := h.scale
	if scale <= 0 {
		scale = defaultTimecodeScale
	}
	info := &MediaInfo{
		Duration: h.duration * float64(scale) / float64(time.Second),
	}
	if h.width > 0 && h.height > 0 {
		info.Width, info.Height = int(h.width), int(h.height)
	}
	return info
}

func (h *mkvHandler) HandleMasterBegin(id mkvparse.ElementID, _ mkvparse.ElementInfo) (bool, error) {
	switch mkvparse.NameForElementID(id) {
	case "Cluster", "Cues", "Tags", "Attachments":
		return false, nil
	}
	return true, nil
}

func (h *mkvHandler) HandleMasterEnd(mkvparse.ElementID, mkvparse.ElementInfo) error {
	return nil
}

func (h *mkvHandler) HandleString(mkvparse.ElementID, string, mkvparse.ElementInfo) error {
	return nil
}

func (h *mkvHandler) HandleInteger(id mkvparse.ElementID, value int64, _ mkvparse.ElementInfo) error {
	switch mkvparse.NameForElementID(id) {
	case "TimecodeScale", "TimestampScale":
		h.scale = value
	case "PixelWidth":
		if h.width == 0 {
			h.width = value
		}
	case "PixelHeight":
		if h.height == 0 {
			h.height = value
		}
	}
	return nil
}

func (h *mkvHandler) HandleFloat(id mkvparse.ElementID, value float64, _ mkvparse.ElementInfo) error {
	if mkvparse.NameForElementID(id) == "Duration" {
		h.duration = value
	}
	return nil
}

func (h *mkvHandler) HandleDate(mkvparse.ElementID, time.Time, mkvparse.ElementInfo) error {
	return nil
}

func (h *mkvHandler) HandleBinary(mkvparse.ElementID, []byte, mkvparse.ElementInfo) error {
	return nil
}
