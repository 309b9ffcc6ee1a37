// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolateConfigPath points CONFIG_PATH at a file that does not exist and runs
// the test from an empty directory so no stray config.yaml is picked up.
func isolateConfigPath(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Chdir(dir)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Model.Dir != "models" {
		t.Errorf("Model.Dir = %q, want models", cfg.Model.Dir)
	}
	if cfg.Model.Codec != "zstd" {
		t.Errorf("Model.Codec = %q, want zstd", cfg.Model.Codec)
	}
	if !cfg.Model.LoadOnStartup {
		t.Error("Model.LoadOnStartup should be true by default")
	}
	if cfg.Model.ReloadInterval != 0 {
		t.Errorf("Model.ReloadInterval = %v, want 0", cfg.Model.ReloadInterval)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Security.RateLimitRequests != 100 || cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigPath(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateConfigPath(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("MODEL_DIR", "/data/models")
	t.Setenv("MODEL_CODEC", "lz4")
	t.Setenv("MODEL_KEEP_VERSIONS", "3")
	t.Setenv("MODEL_LOAD_ON_STARTUP", "false")
	t.Setenv("MODEL_RELOAD_INTERVAL", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Model.Dir != "/data/models" || cfg.Model.Codec != "lz4" || cfg.Model.KeepVersions != 3 {
		t.Errorf("Model = %+v", cfg.Model)
	}
	if cfg.Model.LoadOnStartup {
		t.Error("Model.LoadOnStartup should be false")
	}
	if cfg.Model.ReloadInterval != 30*time.Second {
		t.Errorf("Model.ReloadInterval = %v, want 30s", cfg.Model.ReloadInterval)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Security.MaxBodyBytes != 2048 {
		t.Errorf("MaxBodyBytes = %d, want 2048", cfg.Security.MaxBodyBytes)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deptclassify.yaml")
	content := `
server:
  port: 7000
model:
  dir: /srv/models
  keep_versions: 5
security:
  cors_origins:
    - https://support.example.com
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// env wins over the file
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Model.Dir != "/srv/models" || cfg.Model.KeepVersions != 5 {
		t.Errorf("Model = %+v", cfg.Model)
	}
	if cfg.Model.Codec != "zstd" {
		t.Errorf("Model.Codec = %q, want default zstd", cfg.Model.Codec)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://support.example.com"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if got := ConfigFile(); got != path {
		t.Errorf("ConfigFile() = %q, want %q", got, path)
	}
}

func TestConfigFile_None(t *testing.T) {
	isolateConfigPath(t)
	if got := ConfigFile(); got != "" {
		t.Errorf("ConfigFile() = %q, want empty", got)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "HTTP_PORT", "70000"},
		{"unknown codec", "MODEL_CODEC", "gzip"},
		{"negative keep", "MODEL_KEEP_VERSIONS", "-1"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero rate limit", "RATE_LIMIT_REQUESTS", "0"},
		{"zero body limit", "MAX_BODY_BYTES", "0"},
		{"empty model dir", "MODEL_DIR", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigPath(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"MODEL_DIR", "model.dir"},
		{"MODEL_RELOAD_INTERVAL", "model.reload_interval"},
		{"LOG_CALLER", "logging.caller"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"METRICS_ENABLED", "metrics.enabled"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
