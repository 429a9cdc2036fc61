// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path from.
const EnvironmentVariable = "TRELLMINAL_CONFIG"

// Config is the master configuration for trellminal.
type Config struct {
	// API configures the Trello REST client.
	API APIConfig `yaml:"api"`

	// Store configures the local account database.
	Store StoreConfig `yaml:"store"`

	// UI configures the render loop and navigation engine.
	UI UIConfig `yaml:"ui"`

	// Auth configures the login flows.
	Auth AuthConfig `yaml:"auth"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the Trello REST client.
type APIConfig struct {
	// Key is the public application key sent with every request.
	Key string `yaml:"key"`

	// Endpoint is the REST base URL.
	// Default: https://api.trello.com/1
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds every request, as a Go duration string.
	// Default: 15s
	Timeout string `yaml:"timeout"`
}

// StoreConfig configures the local account database.
type StoreConfig struct {
	// Path is the TOML file holding saved accounts.
	// Default: ${HOME}/.trellminaldb
	Path string `yaml:"path"`
}

// UIConfig configures the render loop and navigation engine.
type UIConfig struct {
	// FrameRate is the number of tick events per second.
	// Default: 10
	FrameRate int `yaml:"frame_rate"`

	// Language selects the UI string catalog (BCP 47 tag).
	// Default: en
	Language string `yaml:"language"`

	// MaxRedirects bounds a chain of mount-time redirects before the
	// navigation engine gives up and shows the error page.
	// Default: 16
	MaxRedirects int `yaml:"max_redirects"`

	// InitialLocation is where the first navigation goes.
	// Default: /
	InitialLocation string `yaml:"initial_location"`
}

// AuthConfig configures the login flows.
type AuthConfig struct {
	// AppName is shown to the user on the Trello authorize page.
	AppName string `yaml:"app_name"`

	// Expiration is the token lifetime requested ("1hour", "1day",
	// "30days", "never").
	Expiration string `yaml:"expiration"`

	// Scope is the requested permission scope.
	Scope string `yaml:"scope"`

	// CallbackAddress is the host:port the local callback listener
	// binds during browser login.
	CallbackAddress string `yaml:"callback_address"`

	// ReplyTimeout bounds how long the callback listener waits for the
	// UI to answer a browser request, as a Go duration string.
	ReplyTimeout string `yaml:"reply_timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum level written to the --log-output file
	// ("debug", "info", "warn", "error").
	// Default: debug
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Key:      "bbc638e415942dcd32cf8b4f07f1aed9",
			Endpoint: "https://api.trello.com/1",
			Timeout:  "15s",
		},
		Store: StoreConfig{
			Path: "${HOME}/.trellminaldb",
		},
		UI: UIConfig{
			FrameRate:       10,
			Language:        "en",
			MaxRedirects:    16,
			InitialLocation: "/",
		},
		Auth: AuthConfig{
			AppName:         "Trellminal",
			Expiration:      "1day",
			Scope:           "read",
			CallbackAddress: "127.0.0.1:9999",
			ReplyTimeout:    "10s",
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// Load loads configuration from the file named by TRELLMINAL_CONFIG.
// When the variable is unset, the defaults are returned (with
// variables expanded).
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values in
// the file override the defaults field by field.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": homeDirectory(),
	}
	c.Store.Path = filepath.Clean(expandVars(c.Store.Path, vars))
}

func homeDirectory() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "~"
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.API.Key == "" {
		errs = append(errs, fmt.Errorf("api.key is required"))
	}
	if c.API.Endpoint == "" {
		errs = append(errs, fmt.Errorf("api.endpoint is required"))
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}
	if c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("store.path is required"))
	}
	if c.UI.FrameRate <= 0 || c.UI.FrameRate > 120 {
		errs = append(errs, fmt.Errorf("ui.frame_rate must be between 1 and 120, got %d", c.UI.FrameRate))
	}
	if c.UI.MaxRedirects <= 0 {
		errs = append(errs, fmt.Errorf("ui.max_redirects must be positive, got %d", c.UI.MaxRedirects))
	}
	if c.UI.InitialLocation == "" || c.UI.InitialLocation[0] != '/' {
		errs = append(errs, fmt.Errorf("ui.initial_location must start with /, got %q", c.UI.InitialLocation))
	}
	if c.Auth.CallbackAddress == "" {
		errs = append(errs, fmt.Errorf("auth.callback_address is required"))
	}
	if _, err := time.ParseDuration(c.Auth.ReplyTimeout); err != nil {
		errs = append(errs, fmt.Errorf("auth.reply_timeout: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout returns api.timeout as a duration. Call Validate
// first; an unparseable value yields zero (no timeout).
func (c *Config) RequestTimeout() time.Duration {
	duration, _ := time.ParseDuration(c.API.Timeout)
	return duration
}

// CallbackReplyTimeout returns auth.reply_timeout as a duration.
func (c *Config) CallbackReplyTimeout() time.Duration {
	duration, _ := time.ParseDuration(c.Auth.ReplyTimeout)
	return duration
}

// FrameInterval returns the delay between tick events.
func (c *Config) FrameInterval() time.Duration {
	if c.UI.FrameRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(c.UI.FrameRate)
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
