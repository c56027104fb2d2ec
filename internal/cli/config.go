package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = ".jsontools.yaml"

// Environment variables that override the config file.
const (
	EnvSeparator = "JSONTOOLS_SEPARATOR"
	EnvSink      = "JSONTOOLS_SINK"
	EnvDSN       = "JSONTOOLS_DSN"
	EnvTable     = "JSONTOOLS_TABLE"
	EnvLenient   = "JSONTOOLS_LENIENT"
)

// Config holds the settings shared by all commands.
// Priority: flags > environment > config file > defaults.
type Config struct {
	Separator string `yaml:"separator"`
	Sink      string `yaml:"sink"`
	DSN       string `yaml:"dsn"`
	Table     string `yaml:"table"`
	Policy    string `yaml:"policy"`
	Lenient   bool   `yaml:"lenient"`
	// DebounceMS is the quiet period of the watch command in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Separator:  jsontools.DefaultSeparator,
		Sink:       "sqlite",
		DSN:        "jsontools.db",
		Policy:     "error",
		DebounceMS: 500,
	}
}

// LoadConfig reads path from fs on top of the defaults and then applies the
// environment through lookup. A missing file is not an error unless required
// is set.
func LoadConfig(fs afero.Fs, path string, required bool, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvSeparator); ok && v != "" {
		cfg.Separator = v
	}
	if v, ok := lookup(EnvSink); ok && v != "" {
		cfg.Sink = v
	}
	if v, ok := lookup(EnvDSN); ok && v != "" {
		cfg.DSN = v
	}
	if v, ok := lookup(EnvTable); ok && v != "" {
		cfg.Table = v
	}
	if v, ok := lookup(EnvLenient); ok && v != "" {
		lenient, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvLenient, err)
		}
		cfg.Lenient = lenient
	}

	if cfg.Separator == "" {
		cfg.Separator = jsontools.DefaultSeparator
	}
	return cfg, nil
}
