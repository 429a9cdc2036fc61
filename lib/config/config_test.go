// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/trellminal/trellminal/lib/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.Endpoint != "https://api.trello.com/1" {
		t.Errorf("expected trello endpoint, got %s", cfg.API.Endpoint)
	}
	if cfg.UI.FrameRate != 10 {
		t.Errorf("expected frame_rate=10, got %d", cfg.UI.FrameRate)
	}
	if cfg.UI.MaxRedirects != 16 {
		t.Errorf("expected max_redirects=16, got %d", cfg.UI.MaxRedirects)
	}
	if cfg.Auth.CallbackAddress != "127.0.0.1:9999" {
		t.Errorf("expected callback_address=127.0.0.1:9999, got %s", cfg.Auth.CallbackAddress)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutVariableUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Store.Path != "/home/tester/.trellminaldb" {
		t.Errorf("expected expanded store path, got %s", cfg.Store.Path)
	}
}

func TestLoad_WithVariable(t *testing.T) {
	configPath := testutil.WriteFile(t, "trellminal.yaml", `
ui:
  frame_rate: 20
  language: de
api:
  timeout: 3s
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.UI.FrameRate != 20 {
		t.Errorf("expected frame_rate=20, got %d", cfg.UI.FrameRate)
	}
	if cfg.UI.Language != "de" {
		t.Errorf("expected language=de, got %s", cfg.UI.Language)
	}
	if cfg.RequestTimeout() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.RequestTimeout())
	}
	// Untouched sections keep their defaults.
	if cfg.UI.MaxRedirects != 16 {
		t.Errorf("expected max_redirects default to survive, got %d", cfg.UI.MaxRedirects)
	}
	if cfg.FrameInterval() != 50*time.Millisecond {
		t.Errorf("expected 50ms frame interval, got %v", cfg.FrameInterval())
	}
}

func TestLoadFile_ExpandsStorePath(t *testing.T) {
	t.Setenv("TRELLMINAL_DATA", "/data")
	configPath := testutil.WriteFile(t, "trellminal.yaml", `
store:
  path: ${TRELLMINAL_DATA}/accounts.toml
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Store.Path != filepath.Join("/data", "accounts.toml") {
		t.Errorf("expected /data/accounts.toml, got %s", cfg.Store.Path)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("TRELLMINAL_UNSET_FOR_TEST", "")
	vars := map[string]string{"HOME": "/home/tester"}

	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/.trellminaldb", "/home/tester/.trellminaldb"},
		{"${TRELLMINAL_UNSET_FOR_TEST:-/fallback}/db", "/fallback/db"},
		{"/plain/path", "/plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.API.Key = ""
	cfg.UI.FrameRate = 0
	cfg.UI.InitialLocation = "workspaces"
	cfg.Auth.ReplyTimeout = "soon"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"api.key", "ui.frame_rate", "ui.initial_location", "auth.reply_timeout", "log.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected error to mention %s, got %v", fragment, err)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	level, err := LogConfig{Level: "warn"}.SlogLevel()
	if err != nil {
		t.Fatalf("SlogLevel() failed: %v", err)
	}
	if level != slog.LevelWarn {
		t.Errorf("expected warn, got %v", level)
	}
}
