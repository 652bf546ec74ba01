// Package config loads the viron server configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsutoringo/viron-go/middleware"
	"github.com/tsutoringo/viron-go/oas"
)

type Config struct {
	Listen      string      `yaml:"listen"`
	LogLevel    string      `yaml:"log_level"`
	Viron       VironConfig `yaml:"viron"`
	CORS        CORSConfig  `yaml:"cors"`
	MetricsPath string      `yaml:"metrics_path"` // "-" disables metrics
}

type VironConfig struct {
	OASPath  string `yaml:"oas_path"`
	AuthPath string `yaml:"auth_path"`
	Pages    string `yaml:"pages"` // page tree file; empty uses the built-in sample
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":3350"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Viron.OASPath == "" {
		c.Viron.OASPath = oas.DefaultOASPath
	}
	if c.Viron.AuthPath == "" {
		c.Viron.AuthPath = oas.DefaultAuthPath
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = append([]string(nil), middleware.DefaultDashboardOrigins...)
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range []struct{ name, path string }{
		{"viron.oas_path", c.Viron.OASPath},
		{"viron.auth_path", c.Viron.AuthPath},
	} {
		if !strings.HasPrefix(f.path, "/") {
			errs = append(errs, fmt.Errorf("%s must start with /, got %q", f.name, f.path))
		}
	}
	if c.Viron.OASPath == c.Viron.AuthPath {
		errs = append(errs, fmt.Errorf("viron.oas_path and viron.auth_path must differ, both are %q", c.Viron.OASPath))
	}
	if c.MetricsPath != "-" && !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("metrics_path must start with / or be -, got %q", c.MetricsPath))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MetricsEnabled reports whether the metrics route is served.
func (c *Config) MetricsEnabled() bool { return c.MetricsPath != "-" }

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
