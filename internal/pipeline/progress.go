package pipeline

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/term"
)

// progress is a spinner on stderr counting scanned files.
type progress struct {
	bar *progressbar.ProgressBar
}

// newProgress returns nil when output is quiet or stderr is not a terminal.
func newProgress(cfg *config.Config) *progress {
	if cfg.Quiet || !term.IsTerminal(os.Stderr) {
		return nil
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &progress{bar: bar}
}

// Visited implements catalog.Observer.
func (p *progress) Visited(string) {
	_ = p.bar.Add(1)
}

func (p *progress) Finish() {
	_ = p.bar.Finish()
}
