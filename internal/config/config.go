// Package config holds runtime configuration: defaults, the optional YAML
// file, MEDIACAT_* environment overrides, CLI flag overrides and validation.
// Running with no configuration at all scans ./assets and writes
// ./assets/content.json with relative locators.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Extensions lists the recognized extensions per classification, lowercase
// with a leading dot. Lists are checked in field order: video, audio, image,
// subtitle, link; anything else is a generic file.
type Extensions struct {
	Video    []string `yaml:"video" envconfig:"VIDEO"`
	Audio    []string `yaml:"audio" envconfig:"AUDIO"`
	Image    []string `yaml:"image" envconfig:"IMAGE"`
	Subtitle []string `yaml:"subtitle" envconfig:"SUBTITLE"`
	Link     []string `yaml:"link" envconfig:"LINK"`
}

// Publish holds the object-storage target for `mediacat publish`.
type Publish struct {
	Bucket    string `yaml:"bucket" envconfig:"BUCKET"`
	Key       string `yaml:"key" envconfig:"KEY"`
	Region    string `yaml:"region" envconfig:"REGION"`
	Endpoint  string `yaml:"endpoint" envconfig:"ENDPOINT"`
	Gzip      bool   `yaml:"gzip" envconfig:"GZIP"`
	SkipBuild bool   `yaml:"-" ignored:"true"`
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then layered by [LoadFile], [LoadEnv] and [ApplyFlags], validated, and
// from then on treated as read-only by the builder.
type Config struct {
	// Layout. AssetsDir is resolved against ProjectRoot unless absolute and
	// defaults to "assets"; catalog locators are relative to ProjectRoot.
	// OutputFile defaults to <assets>/content.json. DefaultThumb is relative
	// to the assets dir.
	ProjectRoot  string `yaml:"projectRoot" envconfig:"PROJECT_ROOT"`
	AssetsDir    string `yaml:"assetsDir" envconfig:"ASSETS_DIR"`
	OutputFile   string `yaml:"outputFile" envconfig:"OUTPUT_FILE"`
	DefaultThumb string `yaml:"defaultThumb" envconfig:"DEFAULT_THUMB"`
	ThumbsDir    string `yaml:"thumbsDir" envconfig:"THUMBS_DIR"`

	// BaseURL prefixes public locators; empty keeps relative paths.
	BaseURL string `yaml:"baseURL" envconfig:"BASE_URL"`

	Extensions Extensions `yaml:"extensions" envconfig:"EXT"`

	// Enrichment. ProbeCommand gets the media path appended.
	SniffMIME    bool          `yaml:"sniffMime" envconfig:"SNIFF_MIME"`
	Probe        bool          `yaml:"probe" envconfig:"PROBE"`
	ProbeCommand string        `yaml:"probeCommand" envconfig:"PROBE_COMMAND"`
	ProbeTimeout time.Duration `yaml:"probeTimeout" envconfig:"PROBE_TIMEOUT"`

	Publish Publish `yaml:"publish" envconfig:"PUBLISH"`

	// Display and logging (CLI only). Quiet suppresses the banner and
	// the progress spinner.
	Verbose   bool      `yaml:"-" ignored:"true"`
	Quiet     bool      `yaml:"-" ignored:"true"`
	ColorMode ColorMode `yaml:"-" ignored:"true"`
	LogFile   string    `yaml:"-" ignored:"true"`
}

// DefaultProbeCommand is the ffprobe invocation used when probing is enabled
// and no template is configured.
const DefaultProbeCommand = "ffprobe -v error -show_entries format=duration,bit_rate:stream=width,height,bit_rate -of json"

// DefaultConfig returns the stock layout and extension tables.
func DefaultConfig() Config {
	return Config{
		ProjectRoot:  ".",
		AssetsDir:    "assets",
		DefaultThumb: "default-thumb.jpg",
		ThumbsDir:    "thumbs",
		Extensions: Extensions{
			Video:    []string{".mp4", ".mkv", ".webm", ".avi", ".mov", ".flv", ".ogv", ".ts", ".m3u8"},
			Audio:    []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"},
			Image:    []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"},
			Subtitle: []string{".srt", ".vtt"},
			Link:     []string{".txt", ".m3u", ".m3u8", ".url", ".csv", ".list"},
		},
		SniffMIME:    true,
		Probe:        false,
		ProbeCommand: DefaultProbeCommand,
		ProbeTimeout: 30 * time.Second,
		Publish: Publish{
			Key: "content.json",
		},
		ColorMode: ColorAuto,
	}
}

// AssetsPath returns the assets directory resolved against ProjectRoot.
func (c *Config) AssetsPath() string {
	if filepath.IsAbs(c.AssetsDir) {
		return filepath.Clean(c.AssetsDir)
	}
	return filepath.Join(c.ProjectRoot, c.AssetsDir)
}

// OutputPath returns where content.json is written.
func (c *Config) OutputPath() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return filepath.Join(c.AssetsPath(), "content.json")
}

// DefaultThumbPath returns the filesystem path of the fallback thumbnail,
// or "" when the fallback is disabled.
func (c *Config) DefaultThumbPath() string {
	if c.DefaultThumb == "" {
		return ""
	}
	if filepath.IsAbs(c.DefaultThumb) {
		return c.DefaultThumb
	}
	return filepath.Join(c.AssetsPath(), c.DefaultThumb)
}

// ProbeArgs splits ProbeCommand into argv form.
func (c *Config) ProbeArgs() []string {
	return strings.Fields(c.ProbeCommand)
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and required values, and canonicalizes the
// extension tables (lowercase, leading dot, no blanks).
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if strings.TrimSpace(c.ProjectRoot) == "" {
		c.ProjectRoot = "."
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		return errors.New("assets directory must not be empty")
	}
	c.ProjectRoot = NormalizeDirArg(c.ProjectRoot)
	c.AssetsDir = NormalizeDirArg(c.AssetsDir)
	c.BaseURL = strings.TrimSpace(c.BaseURL)

	if c.ThumbsDir == "" || strings.ContainsAny(c.ThumbsDir, `/\`) {
		return errors.Errorf("invalid thumbs directory name %q", c.ThumbsDir)
	}

	c.Extensions.Video = normalizeExts(c.Extensions.Video)
	c.Extensions.Audio = normalizeExts(c.Extensions.Audio)
	c.Extensions.Image = normalizeExts(c.Extensions.Image)
	c.Extensions.Subtitle = normalizeExts(c.Extensions.Subtitle)
	c.Extensions.Link = normalizeExts(c.Extensions.Link)
	if len(c.Extensions.Image) == 0 {
		return errors.New("image extension list must not be empty (thumbnails need it)")
	}

	if c.Probe {
		if len(c.ProbeArgs()) == 0 {
			return errors.New("probe command must not be empty when probing is enabled")
		}
		if c.ProbeTimeout <= 0 {
			return errors.Errorf("probe timeout must be positive (got %s)", c.ProbeTimeout)
		}
	}
	return nil
}

// ValidatePublish checks the settings `mediacat publish` needs.
func (c *Config) ValidatePublish() error {
	if c.Publish.Bucket == "" {
		return errors.New("missing required configuration: publish.bucket / MEDIACAT_PUBLISH_BUCKET")
	}
	c.Publish.Key = strings.TrimLeft(c.Publish.Key, "/")
	if c.Publish.Key == "" {
		return errors.New("missing required configuration: publish.key / MEDIACAT_PUBLISH_KEY")
	}
	return nil
}

// normalizeExts lowercases, adds the leading dot and drops blanks and
// duplicates while keeping the first-seen order.
func normalizeExts(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
