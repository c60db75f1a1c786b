package probe

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// FFprobe runs an ffprobe-compatible command. Command is the argv template;
// the media path is appended as the final argument.
type FFprobe struct {
	Command []string
	Timeout time.Duration
}

// Probe runs the command against path under the configured timeout and
// parses its JSON output.
func (p *FFprobe) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	if len(p.Command) == 0 {
		return nil, errors.New("empty probe command")
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(p.Command))
	args = append(args, p.Command[1:]...)
	args = append(args, path)
	out, err := exec.CommandContext(ctx, p.Command[0], args...).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "%s %q", p.Command[0], path)
	}
	return ParseJSON(out)
}

// ParseJSON extracts MediaInfo from ffprobe JSON output. Duration and
// bit_rate come from the format section; a stream bit_rate is used when the
// format has none. Dimensions come from the first stream reporting both.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	_, _, _, formatErr := jsonparser.Get(data, "format")
	_, _, _, streamsErr := jsonparser.Get(data, "streams")
	if formatErr != nil && streamsErr != nil {
		return nil, errors.New("parse ffprobe JSON: no format or streams section")
	}

	info := &MediaInfo{
		Duration: parseFloat(scalar(data, "format", "duration")),
		Bitrate:  cleanBitrate(scalar(data, "format", "bit_rate")),
	}

	var streamBitrate string
	_, err := jsonparser.ArrayEach(data, func(stream []byte, _ jsonparser.ValueType, _ int, _ error) {
		if info.Width == 0 || info.Height == 0 {
			w, _ := jsonparser.GetInt(stream, "width")
			h, _ := jsonparser.GetInt(stream, "height")
			if w > 0 && h > 0 {
				info.Width, info.Height = int(w), int(h)
			}
		}
		if streamBitrate == "" {
			streamBitrate = cleanBitrate(scalar(stream, "bit_rate"))
		}
	}, "streams")
	if err != nil && streamsErr == nil {
		return nil, errors.Wrap(err, "parse ffprobe JSON streams")
	}
	if info.Bitrate == "" {
		info.Bitrate = streamBitrate
	}
	return info, nil
}

// scalar returns the raw text of a string or number value, or "".
func scalar(data []byte, keys ...string) string {
	v, typ, _, err := jsonparser.Get(data, keys...)
	if err != nil {
		return ""
	}
	switch typ {
	case jsonparser.String, jsonparser.Number:
		return strings.TrimSpace(string(v))
	}
	return ""
}

// cleanBitrate keeps positive integer bitrates and drops "N/A" and zeros.
func cleanBitrate(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
