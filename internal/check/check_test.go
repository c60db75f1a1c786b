package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/backmassage/mediacat/internal/config"
)

// mockLogger records every line with its level.
type mockLogger struct {
	lines []string
}

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("SUCCESS", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }
func (m *mockLogger) Debug(f string, a ...interface{})   { m.add("DEBUG", f, a...) }

func (m *mockLogger) has(prefix string) bool {
	for _, l := range m.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ProjectRoot = t.TempDir()
	cfg.ProbeCommand = "mediacat-no-such-probe -of json"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func TestRunCheck_MissingAssets(t *testing.T) {
	cfg := testConfig(t)
	log := &mockLogger{}
	if RunCheck(cfg, log) {
		t.Error("RunCheck should fail without an assets directory")
	}
	if !log.has("ERROR Assets directory not found") {
		t.Errorf("lines = %q", log.lines)
	}
}

func TestRunCheck_ListsRoutes(t *testing.T) {
	cfg := testConfig(t)
	for _, d := range []string{"Peliculas-HD", "misc"} {
		if err := os.MkdirAll(filepath.Join(cfg.AssetsPath(), d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	log := &mockLogger{}
	if !RunCheck(cfg, log) {
		t.Fatalf("RunCheck failed: %q", log.lines)
	}
	for _, want := range []string{"INFO   Peliculas-HD -> peliculas", "INFO   misc -> otros", "WARN Default thumbnail not found"} {
		if !log.has(want) {
			t.Errorf("missing %q in %q", want, log.lines)
		}
	}
	if log.has("ERROR") {
		t.Errorf("unexpected error with probing disabled: %q", log.lines)
	}
}

func TestRunCheck_EmptyAssets(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.AssetsPath(), 0o755); err != nil {
		t.Fatal(err)
	}
	log := &mockLogger{}
	RunCheck(cfg, log)
	if !log.has("WARN No category folders") {
		t.Errorf("lines = %q", log.lines)
	}
}

func TestCheckDeps(t *testing.T) {
	cfg := testConfig(t)
	if err := CheckDeps(cfg); err != nil {
		t.Errorf("probing disabled: err = %v", err)
	}
	cfg.Probe = true
	if err := CheckDeps(cfg); !errors.Is(err, ErrProbeNotFound) {
		t.Errorf("err = %v, want ErrProbeNotFound", err)
	}
}
