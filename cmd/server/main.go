// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/deptclassify/internal/api"
	"github.com/tomtom215/deptclassify/internal/classify"
	"github.com/tomtom215/deptclassify/internal/classify/storage"
	"github.com/tomtom215/deptclassify/internal/config"
	"github.com/tomtom215/deptclassify/internal/logging"
	"github.com/tomtom215/deptclassify/internal/supervisor"
	"github.com/tomtom215/deptclassify/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg))
	logging.Info().Str("config", cfg.String()).Msg("Starting deptclassify")

	watchConfig()

	state, store, err := initClassifier(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize classifier")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Model.LoadOnStartup {
		loadStartupModel(ctx, state)
	}

	router := api.NewRouter(api.NewHandler(state, store), api.RouterConfigFromConfig(cfg))
	handler, err := router.SetupChi()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build router")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Model.ReloadInterval > 0 {
		tree.AddModelService(services.NewModelReloadService(state, store, cfg.Model.ReloadInterval))
	}

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

func loggingConfig(cfg *config.Config) logging.Config {
	return logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	}
}

// initClassifier opens the model store and creates an empty classifier
// state bound to it.
func initClassifier(cfg *config.Config) (*classify.State, *storage.Store, error) {
	codec, err := storage.ParseCodec(cfg.Model.Codec)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStore(cfg.Model.Dir, codec)
	if err != nil {
		return nil, nil, err
	}

	classifyCfg := classify.DefaultConfig()
	classifyCfg.KeepVersions = cfg.Model.KeepVersions

	state, err := classify.New(store, classifyCfg, logging.Logger())
	if err != nil {
		return nil, nil, err
	}
	return state, store, nil
}

// loadStartupModel installs the newest stored model. A missing or broken
// model is logged and the service starts untrained.
func loadStartupModel(ctx context.Context, state *classify.State) bool {
	found, err := state.Load(ctx, "")
	switch {
	case err != nil:
		logging.Error().Err(err).Msg("Failed to load saved model, starting untrained")
		return false
	case !found:
		logging.Warn().Msg("No saved model found")
		return false
	}
	logging.Info().Str("version", state.Version()).Msg("Saved model loaded on startup")
	return true
}

// watchConfig re-applies logging settings when the config file changes.
// Other settings take effect on restart.
func watchConfig() {
	path := config.ConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config change")
			return
		}
		logging.Init(loggingConfig(cfg))
		logging.Info().Str("level", cfg.Logging.Level).Msg("Logging configuration reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
	}
}
