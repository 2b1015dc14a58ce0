package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/api/middleware"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/internal/vouchers"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

type stubVoucherService struct {
	vouchers.Service

	lastScope    *uuid.UUID
	lastCriteria filtering.Criteria
	lastCreate   vouchers.CreateVoucherInput
	lastActive   *bool
	doc          *report.Document
	err          error
}

func (s *stubVoucherService) List(ctx context.Context, scope *uuid.UUID, criteria filtering.Criteria) (*vouchers.ListResult, error) {
	s.lastScope = scope
	s.lastCriteria = criteria
	if s.err != nil {
		return nil, s.err
	}
	return &vouchers.ListResult{Items: []vouchers.VoucherDTO{}, Stats: vouchers.Stats{Total: 0}}, nil
}

func (s *stubVoucherService) Export(ctx context.Context, scope *uuid.UUID, criteria filtering.Criteria) (*report.Document, error) {
	s.lastScope = scope
	s.lastCriteria = criteria
	return s.doc, s.err
}

func (s *stubVoucherService) Create(ctx context.Context, scope *uuid.UUID, input vouchers.CreateVoucherInput) (*vouchers.VoucherDTO, error) {
	s.lastScope = scope
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	return &vouchers.VoucherDTO{ID: uuid.New(), Code: input.Code}, nil
}

func (s *stubVoucherService) SetActive(ctx context.Context, scope *uuid.UUID, id uuid.UUID, active bool) (*vouchers.VoucherDTO, error) {
	s.lastScope = scope
	s.lastActive = &active
	return &vouchers.VoucherDTO{ID: id}, s.err
}

func TestVoucherListUsesVendorScopeAndCriteria(t *testing.T) {
	svc := &stubVoucherService{}
	handler := VoucherList(svc, nil)

	vendorID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/vouchers?q=save&status=active", nil)
	req = req.WithContext(middleware.WithVendorID(req.Context(), vendorID.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastScope == nil || *svc.lastScope != vendorID {
		t.Fatalf("expected vendor scope %s", vendorID)
	}
	if svc.lastCriteria.Query != "save" || svc.lastCriteria.Selections["status"] != "active" {
		t.Fatalf("unexpected criteria %+v", svc.lastCriteria)
	}
}

func TestVoucherListAdminHasNoScope(t *testing.T) {
	svc := &stubVoucherService{}
	handler := VoucherList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/vouchers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastScope != nil {
		t.Fatalf("expected platform scope")
	}
}

func TestVoucherCreateDefaultsFlags(t *testing.T) {
	svc := &stubVoucherService{}
	handler := VoucherCreate(svc, nil)

	body := `{"code":"save20","title":"Save 20","discount_type":"percentage","discount_value":"20",` +
		`"valid_from":"2026-01-01T00:00:00Z","valid_until":"2026-12-31T00:00:00Z","total_usage_limit":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/vouchers", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.lastCreate.IsActive || !svc.lastCreate.IsPublic {
		t.Fatalf("expected active public voucher by default")
	}
	if !svc.lastCreate.DiscountValue.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount 20 got %s", svc.lastCreate.DiscountValue)
	}
}

func TestVoucherCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubVoucherService{}
	handler := VoucherCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/vouchers", bytes.NewBufferString(`{"code":"X","bogus":true}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestVoucherSetActiveRequiresFlag(t *testing.T) {
	svc := &stubVoucherService{}
	router := chi.NewRouter()
	router.Patch("/vouchers/{voucherId}/active", VoucherSetActive(svc, nil))

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/vouchers/"+id.String()+"/active", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/vouchers/"+id.String()+"/active", bytes.NewBufferString(`{"is_active":false}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastActive == nil || *svc.lastActive {
		t.Fatalf("expected deactivation")
	}
}

func TestVoucherExportWritesCSV(t *testing.T) {
	svc := &stubVoucherService{doc: &report.Document{
		Entity:      "vouchers",
		Title:       "Vouchers",
		GeneratedAt: time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC),
		Columns:     []string{"Code", "Status"},
		Rows:        [][]string{{"SAVE20", "active"}},
	}}
	exporter := report.NewExporter(config.ReportsConfig{BrandName: "VenueHub"}, nil, nil)
	handler := VoucherExport(svc, exporter, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/vouchers/export?format=csv&status=active", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "vouchers-20261019-1530.csv") {
		t.Fatalf("unexpected disposition %s", cd)
	}
	if !strings.Contains(rec.Body.String(), "SAVE20") {
		t.Fatalf("expected row in body")
	}
	if svc.lastCriteria.Selections["status"] != "active" {
		t.Fatalf("expected status filter to reach the service")
	}
}

func TestVoucherExportRejectsUnknownFormat(t *testing.T) {
	svc := &stubVoucherService{}
	exporter := report.NewExporter(config.ReportsConfig{}, nil, nil)
	handler := VoucherExport(svc, exporter, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/vouchers/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["format"] == "" {
		t.Fatalf("expected format detail")
	}
}
