package config

// This file defines the CLI flags and copies the ones the user actually set
// onto a Config. Flags are grouped into layout, enrichment, display and
// publish. Flags left unset keep the value from defaults, file or env.

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Flag names shared by the command definitions and ApplyFlags.
const (
	FlagConfig       = "config"
	FlagRoot         = "root"
	FlagAssets       = "assets"
	FlagOut          = "out"
	FlagBaseURL      = "base-url"
	FlagProbe        = "probe"
	FlagProbeCmd     = "probe-cmd"
	FlagProbeTimeout = "probe-timeout"
	FlagNoSniff      = "no-sniff"
	FlagQuiet        = "quiet"
	FlagVerbose      = "verbose"
	FlagColor        = "color"
	FlagNoColor      = "no-color"
	FlagLog          = "log"

	FlagBucket    = "bucket"
	FlagKey       = "key"
	FlagRegion    = "region"
	FlagEndpoint  = "endpoint"
	FlagGzip      = "gzip"
	FlagSkipBuild = "skip-build"
)

// GlobalFlags returns the flags accepted by every command.
func GlobalFlags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, layoutFlags()...)
	flags = append(flags, enrichmentFlags()...)
	flags = append(flags, displayFlags()...)
	return flags
}

// layoutFlags registers --config, --root, --assets, --out, --base-url.
func layoutFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Usage: "YAML config file (default: $" + ConfigFileEnv + ")"},
		&cli.StringFlag{Name: FlagRoot, Usage: "project root; locators are relative to it (default: .)"},
		&cli.StringFlag{Name: FlagAssets, Usage: "assets directory holding the category folders (default: assets)"},
		&cli.StringFlag{Name: FlagOut, Aliases: []string{"o"}, Usage: "output file (default: <assets>/content.json)"},
		&cli.StringFlag{Name: FlagBaseURL, Usage: "public base URL prefixed to local locators"},
	}
}

// enrichmentFlags registers --probe, --probe-cmd, --probe-timeout, --no-sniff.
func enrichmentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: FlagProbe, Usage: "probe video/audio files for duration, size and bitrate"},
		&cli.StringFlag{Name: FlagProbeCmd, Usage: "probe command template; the media path is appended"},
		&cli.DurationFlag{Name: FlagProbeTimeout, Usage: "per-file probe timeout (default: 30s)"},
		&cli.BoolFlag{Name: FlagNoSniff, Usage: "do not sniff MIME types of unrecognized files"},
	}
}

// displayFlags registers --quiet, --verbose, --color, --no-color, --log.
func displayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: FlagQuiet, Aliases: []string{"q"}, Usage: "no progress spinner"},
		&cli.BoolFlag{Name: FlagVerbose, Aliases: []string{"v"}, Usage: "verbose output"},
		&cli.BoolFlag{Name: FlagColor, Usage: "force colored logs"},
		&cli.BoolFlag{Name: FlagNoColor, Usage: "disable colored logs"},
		&cli.StringFlag{Name: FlagLog, Aliases: []string{"l"}, Usage: "append logs to file"},
	}
}

// PublishFlags returns the flags of the publish command.
func PublishFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagBucket, Usage: "target bucket"},
		&cli.StringFlag{Name: FlagKey, Usage: "object key (default: content.json)"},
		&cli.StringFlag{Name: FlagRegion, Usage: "bucket region"},
		&cli.StringFlag{Name: FlagEndpoint, Usage: "S3-compatible endpoint URL"},
		&cli.BoolFlag{Name: FlagGzip, Usage: "upload gzip-encoded"},
		&cli.BoolFlag{Name: FlagSkipBuild, Usage: "upload the existing catalog without rebuilding"},
	}
}

// Lookup is the subset of *cli.Context that ApplyFlags reads. It keeps the
// flag mapping testable without constructing a cli.App.
type Lookup interface {
	IsSet(name string) bool
	String(name string) string
	Bool(name string) bool
	Duration(name string) time.Duration
}

// ApplyFlags copies every flag the user set onto cfg.
func ApplyFlags(c Lookup, cfg *Config) error {
	setString(c, FlagRoot, &cfg.ProjectRoot)
	setString(c, FlagAssets, &cfg.AssetsDir)
	setString(c, FlagOut, &cfg.OutputFile)
	setString(c, FlagBaseURL, &cfg.BaseURL)
	setString(c, FlagProbeCmd, &cfg.ProbeCommand)
	setString(c, FlagLog, &cfg.LogFile)

	setString(c, FlagBucket, &cfg.Publish.Bucket)
	setString(c, FlagKey, &cfg.Publish.Key)
	setString(c, FlagRegion, &cfg.Publish.Region)
	setString(c, FlagEndpoint, &cfg.Publish.Endpoint)

	setBool(c, FlagProbe, &cfg.Probe)
	setBool(c, FlagQuiet, &cfg.Quiet)
	setBool(c, FlagVerbose, &cfg.Verbose)
	setBool(c, FlagGzip, &cfg.Publish.Gzip)
	setBool(c, FlagSkipBuild, &cfg.Publish.SkipBuild)

	if c.IsSet(FlagNoSniff) && c.Bool(FlagNoSniff) {
		cfg.SniffMIME = false
	}
	if c.IsSet(FlagProbeTimeout) {
		cfg.ProbeTimeout = c.Duration(FlagProbeTimeout)
	}

	forceColor := c.IsSet(FlagColor) && c.Bool(FlagColor)
	noColor := c.IsSet(FlagNoColor) && c.Bool(FlagNoColor)
	switch {
	case forceColor && noColor:
		return errors.New("--color and --no-color are mutually exclusive")
	case noColor:
		cfg.ColorMode = ColorNever
	case forceColor:
		cfg.ColorMode = ColorAlways
	}

	if cfg.ProbeCommand != "" && strings.TrimSpace(cfg.ProbeCommand) == "" {
		return errors.New("--probe-cmd must not be blank")
	}
	return nil
}

func setString(c Lookup, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setBool(c Lookup, name string, dst *bool) {
	if c.IsSet(name) {
		*dst = c.Bool(name)
	}
}
