// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/deptclassify/internal/classify/storage"
	"github.com/tomtom215/deptclassify/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("HTTP timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateModel() error {
	if strings.TrimSpace(c.Model.Dir) == "" {
		return errors.New("MODEL_DIR is required")
	}
	if _, err := storage.ParseCodec(c.Model.Codec); err != nil {
		return fmt.Errorf("MODEL_CODEC: %w", err)
	}
	if c.Model.KeepVersions < 0 {
		return fmt.Errorf("MODEL_KEEP_VERSIONS must be >= 0, got %d", c.Model.KeepVersions)
	}
	if c.Model.ReloadInterval < 0 {
		return fmt.Errorf("MODEL_RELOAD_INTERVAL must not be negative, got %s", c.Model.ReloadInterval)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitRequests)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Security.MaxBodyBytes)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
