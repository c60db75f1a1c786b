// Command mediacat scans a media tree and writes the content.json catalog
// read by the browser-side player.
//
// It loads configuration (defaults, YAML file, MEDIACAT_* environment, CLI
// flags), then builds the catalog (default action), runs environment
// diagnostics (check) or builds and uploads the catalog (publish).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/backmassage/mediacat/internal/catalog"
	"github.com/backmassage/mediacat/internal/check"
	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/display"
	"github.com/backmassage/mediacat/internal/logging"
	"github.com/backmassage/mediacat/internal/pipeline"
	"github.com/backmassage/mediacat/internal/publish"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// errReported marks a failure that has already been logged.
var errReported = errors.New("failed")

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if err := newApp().Run(args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "mediacat: %v\n", err)
		}
		return 1
	}
	return 0
}

func newApp() *cli.App {
	// The stock version flag claims -v, which belongs to --verbose here.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	return &cli.App{
		Name:    "mediacat",
		Usage:   "scan a media tree and write its content.json catalog",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Flags:   config.GlobalFlags(),
		Action:  withRuntime(buildCatalog),
		Commands: []*cli.Command{{
			Name:   "build",
			Usage:  "build content.json (default)",
			Flags:  config.GlobalFlags(),
			Action: withRuntime(buildCatalog),
		}, {
			Name:   "check",
			Usage:  "report the resolved layout, category routing and probe tool",
			Flags:  config.GlobalFlags(),
			Action: withRuntime(runCheck),
		}, {
			Name:   "publish",
			Usage:  "build content.json, then upload it to an S3 bucket",
			Flags:  append(config.GlobalFlags(), config.PublishFlags()...),
			Action: withRuntime(publishCatalog),
		}},
		// Errors are reported by run; keep cli from calling os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// flagLookup resolves each flag from the innermost command that set it, so
// global flags work on either side of the command name.
type flagLookup struct {
	c *cli.Context
}

func (l flagLookup) owner(name string) *cli.Context {
	for _, c := range l.c.Lineage() {
		// The root of the lineage is a bare context without flags.
		if c.App == nil {
			continue
		}
		for _, n := range c.LocalFlagNames() {
			if n == name {
				return c
			}
		}
	}
	return nil
}

func (l flagLookup) IsSet(name string) bool {
	return l.owner(name) != nil
}

func (l flagLookup) String(name string) string {
	if c := l.owner(name); c != nil {
		return c.String(name)
	}
	return ""
}

func (l flagLookup) Bool(name string) bool {
	if c := l.owner(name); c != nil {
		return c.Bool(name)
	}
	return false
}

func (l flagLookup) Duration(name string) time.Duration {
	if c := l.owner(name); c != nil {
		return c.Duration(name)
	}
	return 0
}

type runtimeFunc func(ctx context.Context, cfg *config.Config, log *logging.Logger) error

// withRuntime resolves the configuration for the invoked command, opens the
// logger and installs signal handling before calling fn.
func withRuntime(fn runtimeFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		// Bootstrap: the logger doesn't exist yet, so errors are returned to
		// run and printed to stderr.
		flags := flagLookup{c}
		cfg, err := config.Load(flags.String(config.FlagConfig))
		if err != nil {
			return err
		}
		if err := config.ApplyFlags(flags, &cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log, err := logging.NewLogger(&cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		if !cfg.Quiet {
			display.PrintBanner(os.Stdout)
		}
		log.Info("=== mediacat v%s (%s) ===", version, commit)

		// Cancel on SIGINT/SIGTERM; the build stops between folders and
		// writes nothing.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case <-sigCh:
				log.Warn("Received interrupt, stopping…")
				cancel()
			case <-ctx.Done():
			}
		}()

		return fn(ctx, &cfg, log)
	}
}

func buildCatalog(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	if err := check.CheckDeps(cfg); err != nil {
		// Each entry degrades on its own; Matroska headers are still read.
		log.Warn("%v; media metadata will be limited", err)
	}
	if _, err := pipeline.Run(ctx, cfg, log); err != nil {
		switch {
		case errors.Is(err, catalog.ErrRootNotFound):
			log.Error("Assets directory not found: %s", cfg.AssetsPath())
		case errors.Is(err, context.Canceled):
			log.Warn("Interrupted; %s was not written", cfg.OutputPath())
		default:
			log.Error("%v", err)
		}
		return errReported
	}
	return nil
}

func runCheck(_ context.Context, cfg *config.Config, log *logging.Logger) error {
	if !check.RunCheck(cfg, log) {
		return errReported
	}
	return nil
}

func publishCatalog(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	if err := cfg.ValidatePublish(); err != nil {
		log.Error("%v", err)
		return errReported
	}

	path := cfg.OutputPath()
	if cfg.Publish.SkipBuild {
		if _, err := os.Stat(path); err != nil {
			log.Error("No catalog to publish at %s (run without --skip-build)", path)
			return errReported
		}
	} else if err := buildCatalog(ctx, cfg, log); err != nil {
		return err
	}

	var store publish.ObjectStore
	s3, err := publish.NewS3(cfg.Publish.Region, cfg.Publish.Endpoint)
	if err != nil {
		log.Error("%v", err)
		return errReported
	}
	store = s3
	if cfg.Publish.Gzip {
		store = &publish.GzipObjectStore{ObjectStore: s3}
	}

	log.Info("Uploading %s to s3://%s/%s", path, cfg.Publish.Bucket, cfg.Publish.Key)
	if err := publish.Publish(ctx, store, cfg.Publish.Bucket, cfg.Publish.Key, path); err != nil {
		log.Error("%v", err)
		return errReported
	}
	log.Success("Published s3://%s/%s", cfg.Publish.Bucket, cfg.Publish.Key)
	return nil
}
