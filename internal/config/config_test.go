package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "assets", "assets"},
		{"relative with slash", "assets/", "assets"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesExtensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions.Video = []string{"MP4", ".Mkv", " ", ".mp4", "webm"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	want := []string{".mp4", ".mkv", ".webm"}
	if len(cfg.Extensions.Video) != len(want) {
		t.Fatalf("Video = %v, want %v", cfg.Extensions.Video, want)
	}
	for i := range want {
		if cfg.Extensions.Video[i] != want[i] {
			t.Errorf("Video[%d] = %q, want %q", i, cfg.Extensions.Video[i], want[i])
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty assets dir", func(c *Config) { c.AssetsDir = "  " }},
		{"nested thumbs dir", func(c *Config) { c.ThumbsDir = "a/thumbs" }},
		{"empty thumbs dir", func(c *Config) { c.ThumbsDir = "" }},
		{"no image extensions", func(c *Config) { c.Extensions.Image = nil }},
		{"probe without command", func(c *Config) { c.Probe = true; c.ProbeCommand = " " }},
		{"probe without timeout", func(c *Config) { c.Probe = true; c.ProbeTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestValidatePublish(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePublish(); err == nil {
		t.Error("ValidatePublish() should fail without a bucket")
	}
	cfg.Publish.Bucket = "media"
	cfg.Publish.Key = "/site/content.json"
	if err := cfg.ValidatePublish(); err != nil {
		t.Fatalf("ValidatePublish() unexpected error: %v", err)
	}
	if cfg.Publish.Key != "site/content.json" {
		t.Errorf("Key = %q, want leading slash stripped", cfg.Publish.Key)
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = "/srv/site"

	if got, want := cfg.AssetsPath(), filepath.Join("/srv/site", "assets"); got != want {
		t.Errorf("AssetsPath() = %q, want %q", got, want)
	}
	if got, want := cfg.OutputPath(), filepath.Join("/srv/site", "assets", "content.json"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	if got, want := cfg.DefaultThumbPath(), filepath.Join("/srv/site", "assets", "default-thumb.jpg"); got != want {
		t.Errorf("DefaultThumbPath() = %q, want %q", got, want)
	}

	cfg.AssetsDir = "/data/media"
	if got := cfg.AssetsPath(); got != "/data/media" {
		t.Errorf("absolute AssetsPath() = %q", got)
	}
	cfg.OutputFile = "out.json"
	if got := cfg.OutputPath(); got != "out.json" {
		t.Errorf("explicit OutputPath() = %q", got)
	}
	cfg.DefaultThumb = ""
	if got := cfg.DefaultThumbPath(); got != "" {
		t.Errorf("disabled DefaultThumbPath() = %q", got)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "" {
		t.Errorf("default BaseURL = %q, want empty", cfg.BaseURL)
	}
	if cfg.Probe {
		t.Error("default Probe should be false")
	}
	if !cfg.SniffMIME {
		t.Error("default SniffMIME should be true")
	}
	if cfg.ThumbsDir != "thumbs" {
		t.Errorf("default ThumbsDir = %q", cfg.ThumbsDir)
	}
	if cfg.ProbeTimeout != 30*time.Second {
		t.Errorf("default ProbeTimeout = %s", cfg.ProbeTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediacat.yaml")
	data := `
baseURL: https://example.com/site/
probe: true
probeTimeout: 5s
extensions:
  video: [".mp4"]
publish:
  bucket: media
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BaseURL != "https://example.com/site/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.Probe || cfg.ProbeTimeout != 5*time.Second {
		t.Errorf("Probe = %v, ProbeTimeout = %s", cfg.Probe, cfg.ProbeTimeout)
	}
	if len(cfg.Extensions.Video) != 1 || cfg.Extensions.Video[0] != ".mp4" {
		t.Errorf("Video = %v", cfg.Extensions.Video)
	}
	if len(cfg.Extensions.Audio) == 0 {
		t.Error("unset lists should keep their defaults")
	}
	if cfg.Publish.Bucket != "media" || cfg.Publish.Key != "content.json" {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediacat.yaml")
	if err := os.WriteFile(path, []byte("baseUrl: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("LoadFile should reject unknown keys")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile should fail for an explicit missing file")
	}
	if err := LoadFile(&cfg, ""); err != nil {
		t.Errorf("LoadFile with empty path: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MEDIACAT_BASE_URL", "https://cdn.example.com")
	t.Setenv("MEDIACAT_EXT_AUDIO", ".mp3,.opus")
	t.Setenv("MEDIACAT_PROBE_TIMEOUT", "2s")
	t.Setenv("MEDIACAT_PUBLISH_GZIP", "true")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.BaseURL != "https://cdn.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if len(cfg.Extensions.Audio) != 2 || cfg.Extensions.Audio[1] != ".opus" {
		t.Errorf("Audio = %v", cfg.Extensions.Audio)
	}
	if cfg.ProbeTimeout != 2*time.Second {
		t.Errorf("ProbeTimeout = %s", cfg.ProbeTimeout)
	}
	if !cfg.Publish.Gzip {
		t.Error("Publish.Gzip should be set from env")
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("unset env should keep AssetsDir, got %q", cfg.AssetsDir)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediacat.yaml")
	if err := os.WriteFile(path, []byte("baseURL: https://file.example.com\nassetsDir: media\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEDIACAT_BASE_URL", "https://env.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("env should win over file, BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AssetsDir != "media" {
		t.Errorf("file should win over defaults, AssetsDir = %q", cfg.AssetsDir)
	}
}

// fakeLookup implements Lookup from a map of set flags.
type fakeLookup map[string]interface{}

func (f fakeLookup) IsSet(name string) bool { _, ok := f[name]; return ok }
func (f fakeLookup) String(name string) string {
	s, _ := f[name].(string)
	return s
}
func (f fakeLookup) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}
func (f fakeLookup) Duration(name string) time.Duration {
	d, _ := f[name].(time.Duration)
	return d
}

func TestApplyFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://env.example.com"
	flags := fakeLookup{
		FlagAssets:       "media",
		FlagProbe:        true,
		FlagProbeTimeout: 3 * time.Second,
		FlagNoSniff:      true,
		FlagNoColor:      true,
		FlagBucket:       "b",
	}
	if err := ApplyFlags(flags, &cfg); err != nil {
		t.Fatalf("ApplyFlags: %v", err)
	}
	if cfg.AssetsDir != "media" {
		t.Errorf("AssetsDir = %q", cfg.AssetsDir)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("unset flag must not override BaseURL, got %q", cfg.BaseURL)
	}
	if !cfg.Probe || cfg.ProbeTimeout != 3*time.Second {
		t.Errorf("Probe = %v, ProbeTimeout = %s", cfg.Probe, cfg.ProbeTimeout)
	}
	if cfg.SniffMIME {
		t.Error("--no-sniff should disable SniffMIME")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.Publish.Bucket != "b" {
		t.Errorf("Publish.Bucket = %q", cfg.Publish.Bucket)
	}
}

func TestApplyFlags_ColorConflict(t *testing.T) {
	cfg := DefaultConfig()
	flags := fakeLookup{FlagColor: true, FlagNoColor: true}
	if err := ApplyFlags(flags, &cfg); err == nil {
		t.Error("ApplyFlags should reject --color with --no-color")
	}
}
