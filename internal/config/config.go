// Package config contains the configuration of sdpcheck.
//
// Configuration is built from defaults, then from an optional YAML file,
// then from command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output is an output format.
type Output string

// output formats.
const (
	OutputText Output = "text"
	OutputYAML Output = "yaml"
)

// Config is the configuration of sdpcheck.
type Config struct {
	// Directory scanned when no file is passed on the command line.
	Dir string `yaml:"dir"`

	// Glob used to find description files inside directories.
	Pattern string `yaml:"pattern"`

	// Output format.
	Output Output `yaml:"output"`

	// Whether to style text output.
	Color bool `yaml:"color"`

	// Whether to print the reconstructed description of each file.
	Reconstruct bool `yaml:"reconstruct"`

	// One of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Absolute URL that media control attributes are resolved against.
	// Optional.
	ContentBase string `yaml:"content_base"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dir:         ".",
		Pattern:     "*.sdp",
		Output:      OutputText,
		Color:       true,
		Reconstruct: true,
		LogLevel:    "info",
	}
}

// Load loads the configuration from a YAML file, on top of defaults.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}

	cfg.Dir = os.ExpandEnv(cfg.Dir)

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Pattern == "" {
		errs = append(errs, fmt.Errorf("pattern is required"))
	}

	if c.Output != OutputText && c.Output != OutputYAML {
		errs = append(errs, fmt.Errorf("output must be one of: %v", []Output{OutputText, OutputYAML}))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.ContentBaseURL(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel returns the log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log_level: %s", c.LogLevel)
}

// ContentBaseURL returns the parsed content base, or nil when it is not set.
func (c *Config) ContentBaseURL() (*url.URL, error) {
	if c.ContentBase == "" {
		return nil, nil
	}

	u, err := url.Parse(c.ContentBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid content_base: %s", c.ContentBase)
	}
	return u, nil
}
