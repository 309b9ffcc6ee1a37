// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/deptclassify/internal/config"
	"github.com/tomtom215/deptclassify/internal/middleware"
)

// RouterConfig controls the middleware stack around the handlers.
type RouterConfig struct {
	Middleware           *ChiMiddlewareConfig
	MaxBodyBytes         int64
	MetricsEnabled       bool
	CompressionMinSize   int
	SlowRequestThreshold time.Duration
}

// RouterConfigFromConfig builds a RouterConfig from application configuration.
func RouterConfigFromConfig(cfg *config.Config) RouterConfig {
	mw := DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitRequests
	mw.RateLimitWindow = cfg.Security.RateLimitWindow

	return RouterConfig{
		Middleware:     mw,
		MaxBodyBytes:   cfg.Security.MaxBodyBytes,
		MetricsEnabled: cfg.Metrics.Enabled,
	}
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	config        RouterConfig
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	return &Router{
		handler:       handler,
		config:        cfg,
		chiMiddleware: NewChiMiddleware(cfg.Middleware),
	}
}

// SetupChi builds the HTTP handler with all routes and middleware.
func (router *Router) SetupChi() (http.Handler, error) {
	gzip, err := middleware.Compression(router.config.CompressionMinSize)
	if err != nil {
		return nil, fmt.Errorf("compression middleware: %w", err)
	}

	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(stampStart)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(router.config.SlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/health", router.handler.Health)

	if router.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		if router.config.MaxBodyBytes > 0 {
			r.Use(chimiddleware.RequestSize(router.config.MaxBodyBytes))
		}
		r.Use(gzip)

		r.Route("/departments", func(r chi.Router) {
			r.Post("/vectorize", router.handler.Vectorize)
			r.Post("/predict", router.handler.Predict)
		})

		r.Route("/model", func(r chi.Router) {
			r.Get("/info", router.handler.ModelInfo)
			r.Post("/load", router.handler.ModelLoad)
			r.Get("/versions", router.handler.ModelVersions)
			r.Delete("/versions/{version}", router.handler.ModelDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r, nil
}
