// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/deptclassify/internal/config"
)

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m.config == nil {
		t.Fatal("config is nil")
	}
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestChiMiddleware_CORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://support.example.com"}
	m := NewChiMiddleware(cfg)

	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://support.example.com", "https://support.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/departments/predict", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestChiMiddleware_RateLimitDisabled(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.RateLimitRequests = 1
	handler := NewChiMiddleware(cfg).RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/model/info", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRouterConfigFromConfig(t *testing.T) {
	cfg := &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://a.example.com"},
			RateLimitRequests: 7,
			RateLimitWindow:   30 * time.Second,
			MaxBodyBytes:      4096,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	rc := RouterConfigFromConfig(cfg)
	if rc.MaxBodyBytes != 4096 || !rc.MetricsEnabled {
		t.Errorf("RouterConfig = %+v", rc)
	}
	if rc.Middleware.RateLimitRequests != 7 || rc.Middleware.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%v", rc.Middleware.RateLimitRequests, rc.Middleware.RateLimitWindow)
	}
	if len(rc.Middleware.CORSAllowedOrigins) != 1 || rc.Middleware.CORSAllowedOrigins[0] != "https://a.example.com" {
		t.Errorf("CORS origins = %v", rc.Middleware.CORSAllowedOrigins)
	}
}
