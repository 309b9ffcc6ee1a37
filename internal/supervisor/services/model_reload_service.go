// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/deptclassify/internal/logging"
)

// ModelInstaller is the part of *classify.State the reload loop drives.
type ModelInstaller interface {
	Version() string
	Load(ctx context.Context, version string) (bool, error)
}

// LatestVersioner reports the newest stored model version and whether a
// version has been completely written. *storage.Store implements it.
type LatestVersioner interface {
	Latest() (string, bool, error)
	Sealed(version string) bool
}

// ModelReloadService polls the model store and installs a stored version
// that is newer than the one currently installed. This lets several
// replicas sharing a model directory pick up a model trained by any one of
// them.
//
// Versions are timestamp strings, so newer sorts greater. A model trained
// with persist=false keeps the previous version string and is only replaced
// once something newer is saved.
type ModelReloadService struct {
	state    ModelInstaller
	store    LatestVersioner
	interval time.Duration
	logger   zerolog.Logger
	name     string

	// lastFailed suppresses repeated load attempts of a complete version
	// that failed to load.
	lastFailed string
}

// NewModelReloadService creates the reload loop. interval must be positive.
func NewModelReloadService(state ModelInstaller, store LatestVersioner, interval time.Duration) *ModelReloadService {
	return &ModelReloadService{
		state:    state,
		store:    store,
		interval: interval,
		logger:   logging.WithComponent("model-reload"),
		name:     "model-reload",
	}
}

// Serve implements suture.Service.
func (m *ModelReloadService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info().Dur("interval", m.interval).Msg("model reload started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check performs one poll. It reports whether a new version was installed.
func (m *ModelReloadService) check(ctx context.Context) bool {
	latest, ok, err := m.store.Latest()
	if err != nil {
		m.logger.Warn().Err(err).Msg("listing stored models failed")
		return false
	}
	if !ok || latest <= m.state.Version() || latest == m.lastFailed {
		return false
	}

	found, err := m.state.Load(ctx, latest)
	if err != nil {
		if !m.store.Sealed(latest) {
			// Still being written; retry on the next poll.
			m.logger.Debug().Err(err).Str("version", latest).Msg("stored model incomplete, will retry")
			return false
		}
		m.lastFailed = latest
		m.logger.Error().Err(err).Str("version", latest).Msg("model reload failed")
		return false
	}
	if !found {
		// Deleted between Latest and Load; the next poll sees the new state.
		return false
	}

	m.lastFailed = ""
	m.logger.Info().Str("version", latest).Msg("model reloaded")
	return true
}

// String identifies the service in supervisor logs.
func (m *ModelReloadService) String() string {
	return m.name
}
