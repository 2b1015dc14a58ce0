package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/venuehub/venuehub-backend/internal/dashboard"
	"github.com/venuehub/venuehub-backend/internal/preferences"
	"github.com/venuehub/venuehub-backend/internal/vendors"
	pkgAuth "github.com/venuehub/venuehub-backend/pkg/auth"
	"github.com/venuehub/venuehub-backend/pkg/auth/session"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (session.Pair, error) {
	return session.Pair{}, nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubDashboardService struct{}

func (stubDashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	return &dashboard.Overview{GeneratedAt: time.Now()}, nil
}

type stubPreferenceService struct {
	preferences.Service
}

func (stubPreferenceService) ListVisible(ctx context.Context) ([]preferences.PreferenceDTO, error) {
	return []preferences.PreferenceDTO{{ID: uuid.New(), Name: "Outdoor"}}, nil
}

type stubVendorService struct {
	vendors.Service
}

func (stubVendorService) Get(ctx context.Context, id uuid.UUID) (*vendors.VendorDTO, error) {
	return &vendors.VendorDTO{ID: id}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, reg *prometheus.Registry) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	params := Params{
		Config:      cfg,
		Logger:      logg,
		DB:          stubPinger{},
		Sessions:    stubSessionManager{},
		Dashboard:   stubDashboardService{},
		Preferences: stubPreferenceService{},
		Vendors:     stubVendorService{},
	}
	if reg != nil {
		params.HTTPMetrics = metrics.NewHTTPMetrics(reg)
		params.Gatherer = reg
	}
	return NewRouter(params)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole, vendorID *uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Role:     role,
		VendorID: vendorID,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func serve(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	if rec := serve(router, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ready got %d", rec.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	if rec := serve(router, http.MethodGet, "/api/admin/v1/dashboard", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}

	vendorID := uuid.New()
	if rec := serve(router, http.MethodGet, "/api/admin/v1/dashboard", buildToken(t, cfg, enums.UserRoleVendor, &vendorID)); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor got %d", rec.Code)
	}

	if rec := serve(router, http.MethodGet, "/api/admin/v1/dashboard", buildToken(t, cfg, enums.UserRoleAdmin, nil)); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", rec.Code)
	}
}

func TestVendorGroupRequiresVendorProfile(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	if rec := serve(router, http.MethodGet, "/api/v1/vendor/profile", buildToken(t, cfg, enums.UserRoleCustomer, nil)); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/v1/vendor/profile", buildToken(t, cfg, enums.UserRoleVendor, nil)); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor without profile got %d", rec.Code)
	}

	vendorID := uuid.New()
	rec := serve(router, http.MethodGet, "/api/v1/vendor/profile", buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), vendorID.String()) {
		t.Fatalf("expected own vendor profile in body")
	}
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	router := newTestRouter(testConfig(), nil)

	rec := serve(router, http.MethodGet, "/api/public/preferences", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Outdoor") {
		t.Fatalf("expected visible preference in body")
	}
}

func TestMetricsEndpointReportsRoutePatterns(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(testConfig(), reg)

	serve(router, http.MethodGet, "/health/live", "")
	rec := serve(router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http_requests_total") || !strings.Contains(body, `route="/health/live"`) {
		t.Fatalf("expected route labelled counter, got:\n%s", body)
	}
}

func TestMetricsEndpointAbsentWithoutGatherer(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	if rec := serve(router, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
