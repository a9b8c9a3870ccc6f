// Package config loads the docsync configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/docsync"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/notify"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docsync.yaml"

// Config is the on-disk configuration.
type Config struct {
	OutputDir          string                 `yaml:"output_dir"`
	Watch              bool                   `yaml:"watch"`
	Clean              bool                   `yaml:"clean"`
	Validate           bool                   `yaml:"validate"`
	PreserveExtensions bool                   `yaml:"preserve_extensions"`
	SourcePatterns     []docmodel.PathPattern `yaml:"source_patterns"`
	WatchDebounce      time.Duration          `yaml:"watch_debounce"`
	Logging            LoggingConfig          `yaml:"logging"`
	Metrics            MetricsConfig          `yaml:"metrics"`
	Notify             NotifyConfig           `yaml:"notify"`
	Schedule           ScheduleConfig         `yaml:"schedule"`

	path string
	root string
}

// MetricsConfig controls the Prometheus endpoint of long-running modes.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// NotifyConfig controls event publishing. An empty NATSURL disables it.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// ScheduleConfig controls periodic syncing.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		OutputDir:          "docs/generated",
		Watch:              true,
		Clean:              true,
		Validate:           true,
		PreserveExtensions: true,
		SourcePatterns:     docmodel.DefaultPatterns(),
		WatchDebounce:      docsync.DefaultWatchDebounce,
		Logging:            LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics:            MetricsConfig{Listen: ":9464", Path: "/metrics"},
		Notify:             NotifyConfig{Subject: notify.DefaultSubject},
	}
}

// Load reads the configuration at path. A .env file next to it is loaded
// first without overriding variables already set, then ${VAR} references in
// the file are expanded.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.ConfigError("failed to resolve configuration path").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := loadEnvFile(filepath.Join(filepath.Dir(absPath), ".env")); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		msg := "failed to read configuration file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "configuration file not found"
		}
		return nil, ferrors.ConfigError(msg).WithCause(err).WithContext("path", absPath).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.path = absPath
	cfg.root = ProjectRoot(filepath.Dir(absPath))
	return cfg, nil
}

// Parse decodes YAML onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ferrors.ConfigError("failed to parse configuration").WithCause(err).Build()
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	for i := range c.SourcePatterns {
		p := &c.SourcePatterns[i]
		p.Pattern = strings.TrimSpace(p.Pattern)
		p.OutputSubdir = strings.Trim(strings.TrimSpace(p.OutputSubdir), "/")
		if p.Pattern == "" {
			return ferrors.ConfigError("source pattern must not be empty").WithContext("index", i).Build()
		}
		if p.OutputSubdir == "" {
			return ferrors.ConfigError("source pattern needs an output_subdir").WithContext("pattern", p.Pattern).Build()
		}
	}

	level, err := logLevels.Parse(string(c.Logging.Level))
	if err != nil {
		return ferrors.ConfigError("invalid logging configuration").WithCause(err).Build()
	}
	c.Logging.Level = level
	format, err := logFormats.Parse(string(c.Logging.Format))
	if err != nil {
		return ferrors.ConfigError("invalid logging configuration").WithCause(err).Build()
	}
	c.Logging.Format = format

	if c.WatchDebounce < 0 {
		return ferrors.ConfigError("watch_debounce must not be negative").Build()
	}
	if c.Schedule.Interval < 0 {
		return ferrors.ConfigError("schedule interval must not be negative").Build()
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Listen) == "" {
		return ferrors.ConfigError("metrics listen address is required when metrics are enabled").Build()
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		c.Metrics.Path = "/" + c.Metrics.Path
	}
	if strings.TrimSpace(c.Notify.Subject) == "" {
		c.Notify.Subject = notify.DefaultSubject
	}
	return nil
}

// Path returns the absolute path the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Root returns the project root relative patterns are resolved against.
func (c *Config) Root() string {
	if c.root == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return c.root
}

// SyncConfig returns the engine configuration.
func (c *Config) SyncConfig() docsync.Config {
	return docsync.Config{
		SourcePatterns:     append([]docmodel.PathPattern(nil), c.SourcePatterns...),
		OutputDir:          c.OutputDir,
		Watch:              c.Watch,
		Clean:              c.Clean,
		Validate:           c.Validate,
		PreserveExtensions: c.PreserveExtensions,
	}
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return ferrors.ConfigError("failed to load environment file").WithCause(err).WithContext("path", path).Build()
	}
	return nil
}
