package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/mediacat/internal/catalog"
	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/display"
	"github.com/backmassage/mediacat/internal/logging"
	"github.com/backmassage/mediacat/internal/naming"
	"github.com/backmassage/mediacat/internal/probe"
)

// Run builds the catalog described by cfg and writes it to cfg.OutputPath.
// Nothing is written when the build fails.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	stats := RunStats{Output: cfg.OutputPath(), ProbeEnabled: cfg.Probe}

	var prober probe.Prober
	if cfg.Probe {
		prober = probe.New(cfg.ProbeArgs(), cfg.ProbeTimeout)
	}
	b, err := catalog.NewBuilder(cfg, prober, log)
	if err != nil {
		return stats, err
	}

	log.Info("Scanning %s", b.AssetsDir())
	if cfg.Probe {
		log.Info("Probing media with: %s", cfg.ProbeCommand)
	}

	start := time.Now()
	spin := newProgress(cfg)
	if spin != nil {
		b.Observer = spin
	}
	cat, err := b.Build(ctx)
	if spin != nil {
		spin.Finish()
	}
	if err != nil {
		return stats, err
	}

	data, err := Marshal(cat)
	if err != nil {
		return stats, errors.Wrap(err, "encoding catalog")
	}
	if err := WriteFileAtomic(stats.Output, data); err != nil {
		return stats, err
	}

	stats.Collect(cat)
	stats.OutputBytes = int64(len(data))
	stats.Elapsed = time.Since(start)
	logMedia(log, cat)
	logSummary(log, &stats)
	return stats, nil
}

// Marshal renders the catalog with two-space indentation and without HTML
// escaping.
func Marshal(cat *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cat); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never see a partial catalog.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing catalog")
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "setting catalog permissions")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing catalog")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "renaming catalog to %s", path)
	}
	return nil
}

// logMedia prints probed metadata at debug level.
func logMedia(log *logging.Logger, cat *catalog.Catalog) {
	if !log.Verbose() {
		return
	}
	cat.Walk(func(_ naming.Category, e *catalog.Entry) {
		if e.Media == nil {
			return
		}
		m := e.Media
		line := display.FormatDuration(m.Duration)
		if m.Width > 0 {
			line += fmt.Sprintf(", %dx%d", m.Width, m.Height)
		}
		if kbps := m.Kbps(); kbps > 0 {
			line += ", " + display.FormatBitrateLabel(kbps)
		}
		log.Debug("  %s: %s", e.Asset.Local, line)
	})
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Success("Wrote %s (%s) in %s", stats.Output,
		display.FormatBytes(stats.OutputBytes), stats.Elapsed.Round(time.Millisecond))
	log.Info("Summary report:")
	log.Info("  Entries: %d in %d folders", stats.Entries, stats.Folders)
	log.Info("  By category: %s", stats.CategoryLine())
	log.Info("  By type: %s", stats.KindLine())
	log.Info("  Catalogued size: %s", display.FormatBytes(stats.Bytes))
	log.Info("  Thumbnails: %d of %d files", stats.Thumbs, stats.Files)
	if stats.ProbeEnabled {
		if stats.ProbeFailed > 0 {
			log.Warn("  Probed: %d ok, %d without metadata", stats.Probed, stats.ProbeFailed)
		} else {
			log.Info("  Probed: %d ok", stats.Probed)
		}
	}
	if stats.Errors > 0 {
		log.Warn("  %d entries carry read errors", stats.Errors)
	}
}
