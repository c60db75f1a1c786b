// Package check provides environment diagnostics (the check command) and
// pre-build dependency validation (CheckDeps) for the probe tool.
package check

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/mediacat/internal/config"
	"github.com/backmassage/mediacat/internal/naming"
)

// ErrProbeNotFound is returned by CheckDeps when probing is enabled and the
// probe command is not on PATH.
var ErrProbeNotFound = errors.New("probe command not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck reports the resolved layout, the category each top-level folder
// routes to, the fallback thumbnail and the probe tool. It returns false
// when a build would fail.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	log.Info("Project root: %s", cfg.ProjectRoot)
	log.Info("Output: %s", cfg.OutputPath())
	if cfg.BaseURL != "" {
		log.Info("Base URL: %s", cfg.BaseURL)
	} else {
		log.Info("Base URL: (none, locators stay relative)")
	}

	ok := checkAssets(cfg, log)
	if ok {
		checkDefaultThumb(cfg, log)
	}
	checkOutputDir(cfg, log)
	checkProbe(cfg, log)
	return ok
}

// checkAssets verifies the assets directory and lists its category folders.
func checkAssets(cfg *config.Config, log Logger) bool {
	assets := cfg.AssetsPath()
	st, err := os.Stat(assets)
	if err != nil || !st.IsDir() {
		log.Error("Assets directory not found: %s", assets)
		return false
	}
	log.Success("Assets directory: %s", assets)

	dirents, err := os.ReadDir(assets)
	if err != nil {
		log.Error("Cannot list assets directory: %v", err)
		return false
	}
	folders := 0
	for _, de := range dirents {
		if st, err := os.Stat(filepath.Join(assets, de.Name())); err != nil || !st.IsDir() {
			continue
		}
		folders++
		log.Info("  %s -> %s", de.Name(), naming.Route(de.Name()))
	}
	if folders == 0 {
		log.Warn("No category folders in %s; the catalog will be empty", assets)
	}
	return true
}

func checkDefaultThumb(cfg *config.Config, log Logger) {
	path := cfg.DefaultThumbPath()
	if path == "" {
		log.Info("Default thumbnail: disabled")
		return
	}
	if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
		log.Success("Default thumbnail: %s", path)
		return
	}
	log.Warn("Default thumbnail not found: %s (entries without a thumbs match get none)", path)
}

func checkOutputDir(cfg *config.Config, log Logger) {
	dir := filepath.Dir(cfg.OutputPath())
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		log.Warn("Output directory does not exist yet: %s", dir)
	}
}

// checkProbe verifies the probe command is on PATH and logs its version.
func checkProbe(cfg *config.Config, log Logger) {
	args := cfg.ProbeArgs()
	if len(args) == 0 {
		log.Warn("No probe command configured")
		return
	}
	name := args[0]
	if !cfg.Probe {
		log.Info("Metadata probing disabled (enable with --probe)")
	}
	if _, err := exec.LookPath(name); err != nil {
		if cfg.Probe {
			log.Warn("%s not found; only Matroska headers will be read", name)
		} else {
			log.Info("%s not found", name)
		}
		return
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
}

// CheckDeps is the pre-build validation: when probing is enabled it reports
// a probe command missing from PATH. Callers warn and keep building.
func CheckDeps(cfg *config.Config) error {
	if !cfg.Probe {
		return nil
	}
	args := cfg.ProbeArgs()
	if len(args) == 0 {
		return ErrProbeNotFound
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return errors.Wrapf(ErrProbeNotFound, "%s", args[0])
	}
	return nil
}
