package catalog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/naming"
	"github.com/backmassage/mediacat/internal/probe"
)

// ErrRootNotFound is returned by Build when the assets directory is missing
// or is not a directory.
var ErrRootNotFound = errors.New("assets directory not found")

// Builder produces a Catalog from the assets directory. Its configuration is
// fixed at construction.
type Builder struct {
	projectRoot  string
	assetsDir    string
	thumbsDir    string
	defaultThumb string
	imageExts    []string
	classifier   Classifier
	locator      Locator
	sniff        bool
	prober       probe.Prober
	log          Logger

	// Observer, when set, is told about every file scanned.
	Observer Observer
}

// NewBuilder resolves the configured paths. prober may be nil to disable
// metadata probing; log may be nil.
func NewBuilder(cfg *config.Config, prober probe.Prober, log Logger) (*Builder, error) {
	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, errors.Wrap(err, "resolving project root")
	}
	assets, err := filepath.Abs(cfg.AssetsPath())
	if err != nil {
		return nil, errors.Wrap(err, "resolving assets directory")
	}
	defaultThumb := cfg.DefaultThumbPath()
	if defaultThumb != "" {
		if defaultThumb, err = filepath.Abs(defaultThumb); err != nil {
			return nil, errors.Wrap(err, "resolving default thumbnail")
		}
	}
	return &Builder{
		projectRoot:  root,
		assetsDir:    assets,
		thumbsDir:    cfg.ThumbsDir,
		defaultThumb: defaultThumb,
		imageExts:    cfg.Extensions.Image,
		classifier:   NewClassifier(cfg.Extensions),
		locator:      Locator{BaseURL: cfg.BaseURL},
		sniff:        cfg.SniffMIME,
		prober:       prober,
		log:          log,
	}, nil
}

// AssetsDir returns the absolute assets directory.
func (b *Builder) AssetsDir() string { return b.assetsDir }

// Build scans every immediate subdirectory of the assets directory, enriches
// the result and routes it into a category by the subdirectory's name. Files
// directly in the assets directory are not catalogued. Only a missing assets
// directory or cancellation fails the build.
func (b *Builder) Build(ctx context.Context) (*Catalog, error) {
	st, err := os.Stat(b.assetsDir)
	if err != nil || !st.IsDir() {
		return nil, errors.Wrapf(ErrRootNotFound, "%s", b.assetsDir)
	}
	dirents, err := os.ReadDir(b.assetsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", b.assetsDir)
	}

	scanner := NewScanner(b.classifier, b.locator, b.projectRoot, b.assetsDir, b.Observer)
	enricher := &Enricher{
		Thumbs: NewThumbnailer(b.projectRoot, b.thumbsDir, b.imageExts, b.locator, b.defaultThumb),
		Sniff:  b.sniff,
		Prober: b.prober,
		Log:    b.log,
	}

	cat := NewCatalog()
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full := filepath.Join(b.assetsDir, de.Name())
		if st, err := os.Stat(full); err != nil || !st.IsDir() {
			continue
		}
		nodes := scanner.ScanDirectory(full)
		if len(nodes) == 0 {
			continue
		}
		enricher.Enrich(ctx, nodes)
		category := naming.Route(de.Name())
		if b.log != nil {
			b.log.Debug("%s -> %s", de.Name(), category)
		}
		cat.Add(category, nodes...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cat, nil
}
