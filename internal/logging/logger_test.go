package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/mediacat/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "mediacat.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_Routing(t *testing.T) {
	var stdout, stderr, file bytes.Buffer
	l := New(false, false, &stdout, &stderr, &file)

	l.Info("scanning %s", "assets")
	l.Success("wrote %d entries", 3)
	l.Warn("careful")
	l.Error("broken")
	l.Debug("hidden")

	out := stdout.String()
	for _, want := range []string{"[INFO] scanning assets", "[SUCCESS] wrote 3 entries", "[WARN] careful"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "broken") {
		t.Error("errors should not go to stdout")
	}
	if !strings.Contains(stderr.String(), "[ERROR] broken") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if strings.Contains(out+stderr.String()+file.String(), "hidden") {
		t.Error("debug output should be suppressed when not verbose")
	}
	if got := strings.Count(file.String(), "\n"); got != 4 {
		t.Errorf("file has %d lines, want 4:\n%s", got, file.String())
	}
}

func TestLogger_Verbose(t *testing.T) {
	var stdout bytes.Buffer
	l := New(true, false, &stdout, &stdout, nil)
	if !l.Verbose() {
		t.Fatal("Verbose() = false")
	}
	l.Debug("probe %s", "a.mkv")
	if !strings.Contains(stdout.String(), "[DEBUG] probe a.mkv") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing to see")
	if l.Verbose() {
		t.Error("Discard logger should not be verbose")
	}
}
