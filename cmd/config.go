package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v3"

	"github.com/tenqz/tagparser/core/fetch"
	"github.com/tenqz/tagparser/core/render"
	"github.com/tenqz/tagparser/crawl"
)

// Config is the resolved run configuration.
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Timeout   time.Duration
	UserAgent string
	MaxPages  int
}

// DefaultConfig returns the values used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Format:    render.DefaultFormat,
		Timeout:   fetch.DefaultTimeout,
		UserAgent: fetch.DefaultUserAgent,
		MaxPages:  crawl.DefaultMaxPages,
	}
}

// FileConfig is the YAML/JSON config file schema.
type FileConfig struct {
	Format    string `yaml:"format" json:"format"`
	OutputDir string `yaml:"outputDir" json:"outputDir"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`

	Fetch struct {
		Timeout   Duration `yaml:"timeout" json:"timeout"`
		UserAgent string   `yaml:"userAgent" json:"userAgent"`
	} `yaml:"fetch" json:"fetch"`

	Crawl struct {
		MaxPages int `yaml:"maxPages" json:"maxPages"`
	} `yaml:"crawl" json:"crawl"`
}

// Duration is a time.Duration written as "5s" in YAML and JSON config files.
// JSON numbers are read as nanoseconds.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if nerr := json.Unmarshal(b, &n); nerr != nil {
			return fmt.Errorf("duration: %w", err)
		}
		*d = Duration(n)
		return nil
	}
	return d.parse(s)
}

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig, chosen by extension.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config: %w", err)
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// envPrefix is prepended to every environment key.
const envPrefix = "TAGPARSER"

// EnvConfig holds the TAGPARSER_* environment overrides. Nil fields were not
// set.
type EnvConfig struct {
	Format    *string
	OutputDir *string `split_words:"true"`
	Timeout   *time.Duration
	UserAgent *string `split_words:"true"`
	MaxPages  *int    `split_words:"true"`
	Verbose   *bool
}

// LoadEnv decodes the TAGPARSER_* variables.
func LoadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return env, fmt.Errorf("environment: %w", err)
	}
	return env, nil
}

// ApplyFileConfig copies set file values into cfg for every setting whose
// flag was not given on the command line.
func ApplyFileConfig(cfg *Config, fc FileConfig, flags *pflag.FlagSet) {
	if cfg == nil {
		return
	}
	explicit := func(name string) bool { return flags != nil && flags.Changed(name) }

	if !explicit("format") && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if !explicit("output_dir") && fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if !explicit("verbose") && fc.Verbose {
		cfg.Verbose = true
	}
	if !explicit("timeout") && fc.Fetch.Timeout != 0 {
		cfg.Timeout = time.Duration(fc.Fetch.Timeout)
	}
	if !explicit("user_agent") && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if !explicit("max_pages") && fc.Crawl.MaxPages != 0 {
		cfg.MaxPages = fc.Crawl.MaxPages
	}
}

// ApplyEnvOverrides overrides cfg with TAGPARSER_* variables, except where
// the matching flag was given explicitly.
func ApplyEnvOverrides(cfg *Config, flags *pflag.FlagSet) error {
	if cfg == nil {
		return nil
	}
	env, err := LoadEnv()
	if err != nil {
		return err
	}
	explicit := func(name string) bool { return flags != nil && flags.Changed(name) }

	if env.Format != nil && *env.Format != "" && !explicit("format") {
		cfg.Format = *env.Format
	}
	if env.OutputDir != nil && *env.OutputDir != "" && !explicit("output_dir") {
		cfg.OutputDir = *env.OutputDir
	}
	if env.UserAgent != nil && *env.UserAgent != "" && !explicit("user_agent") {
		cfg.UserAgent = *env.UserAgent
	}
	if env.Timeout != nil && !explicit("timeout") {
		cfg.Timeout = *env.Timeout
	}
	if env.MaxPages != nil && !explicit("max_pages") {
		cfg.MaxPages = *env.MaxPages
	}
	if env.Verbose != nil && !explicit("verbose") {
		cfg.Verbose = *env.Verbose
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := render.New(c.Format); err != nil {
		return err
	}
	if c.MaxPages < 0 {
		return errors.New("max pages must not be negative")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(flagCfg Config, configPath string, flags *pflag.FlagSet) (Config, error) {
	cfg := flagCfg
	if configPath != "" {
		fc, err := LoadConfigFile(configPath)
		if err != nil {
			return cfg, err
		}
		ApplyFileConfig(&cfg, fc, flags)
	}
	if err := ApplyEnvOverrides(&cfg, flags); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
