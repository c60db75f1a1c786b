package probe

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Chain tries each prober in order and returns the first success. Probers
// answering ErrUnsupported are skipped silently.
type Chain []Prober

// New returns the standard chain: the ffprobe command first, then the
// in-process Matroska reader.
func New(command []string, timeout time.Duration) Chain {
	return Chain{
		&FFprobe{Command: command, Timeout: timeout},
		Matroska{},
	}
}

func (c Chain) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	var lastErr error
	for _, p := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := p.Probe(ctx, path)
		if err == nil {
			return info, nil
		}
		if errors.Is(err, ErrUnsupported) && lastErr != nil {
			continue
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrUnsupported
	}
	return nil, lastErr
}
