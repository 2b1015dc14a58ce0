package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/venuehub/venuehub-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	tests := []struct {
		name string
		deps map[string]Pinger
		want int
	}{
		{name: "all up", deps: map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{}}, want: http.StatusOK},
		{name: "redis down", deps: map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{err: errors.New("dial")}}, want: http.StatusServiceUnavailable},
		{name: "no deps", deps: nil, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthReady(cfg, tt.deps, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if rec.Code != tt.want {
				t.Fatalf("expected %d got %d", tt.want, rec.Code)
			}
			if rec.Header().Get("X-VenueHub-Env") != "dev" {
				t.Fatalf("expected env header")
			}
		})
	}
}
