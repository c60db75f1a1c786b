package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MEDIACAT_BASE_URL.
	EnvPrefix = "MEDIACAT"

	// ConfigFileEnv names the variable consulted when --config is not given.
	ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"
)

// ConfigFilePath returns the explicit path if set, otherwise the value of
// MEDIACAT_CONFIG_FILE (possibly empty, meaning no file).
func ConfigFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(ConfigFileEnv)
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are an
// error. An empty path is a no-op.
func LoadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errors.Wrapf(err, "unmarshaling config file %s", path)
	}
	return nil
}

// LoadEnv overlays MEDIACAT_* environment variables onto cfg. Variables that
// are unset leave the current value untouched; list values are
// comma-separated.
func LoadEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return errors.Wrap(err, "parsing environment variables")
	}
	return nil
}

// Load builds the effective configuration from defaults, the optional config
// file and the environment. CLI flags are applied afterwards by [ApplyFlags].
func Load(configFile string) (Config, error) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, ConfigFilePath(configFile)); err != nil {
		return cfg, err
	}
	if err := LoadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
