package vouchers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type stubVoucherRepo struct {
	vouchers  map[uuid.UUID]*models.Voucher
	order     []uuid.UUID
	createErr error
	listErr   error
	findErr   error
	updated   int
}

func newStubVoucherRepo(vouchers ...*models.Voucher) *stubVoucherRepo {
	repo := &stubVoucherRepo{vouchers: map[uuid.UUID]*models.Voucher{}}
	for _, v := range vouchers {
		repo.vouchers[v.ID] = v
		repo.order = append(repo.order, v.ID)
	}
	return repo
}

func (s *stubVoucherRepo) Create(_ context.Context, voucher *models.Voucher) error {
	if s.createErr != nil {
		return s.createErr
	}
	voucher.ID = uuid.New()
	s.vouchers[voucher.ID] = voucher
	s.order = append(s.order, voucher.ID)
	return nil
}

func (s *stubVoucherRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Voucher, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	v, ok := s.vouchers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *v
	return &clone, nil
}

func (s *stubVoucherRepo) Update(_ context.Context, voucher *models.Voucher) error {
	s.updated++
	clone := *voucher
	s.vouchers[voucher.ID] = &clone
	return nil
}

func (s *stubVoucherRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.vouchers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.vouchers, id)
	return nil
}

func (s *stubVoucherRepo) List(_ context.Context, vendorID *uuid.UUID) ([]models.Voucher, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []models.Voucher{}
	for _, id := range s.order {
		v, ok := s.vouchers[id]
		if !ok {
			continue
		}
		if vendorID != nil && (v.VendorID == nil || *v.VendorID != *vendorID) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

type stubVendorDirectory map[uuid.UUID]string

func (s stubVendorDirectory) BusinessNames(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	for _, id := range ids {
		if name, ok := s[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *stubVoucherRepo, vendors stubVendorDirectory) *service {
	t.Helper()
	svc, err := NewService(repo, vendors)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	impl := svc.(*service)
	impl.now = func() time.Time { return testNow }
	return impl
}

func voucherFixture(code string, typ enums.DiscountType, value int64, active bool, until time.Time, used, limit int64) *models.Voucher {
	return &models.Voucher{
		ID:                uuid.New(),
		Code:              code,
		Title:             code + " offer",
		DiscountType:      typ,
		DiscountValue:     decimal.NewFromInt(value),
		IsActive:          active,
		IsPublic:          true,
		ValidFrom:         testNow.AddDate(0, -1, 0),
		ValidUntil:        until,
		CurrentUsageCount: used,
		TotalUsageLimit:   limit,
		PerUserLimit:      1,
	}
}

func scenarioVouchers() []*models.Voucher {
	return []*models.Voucher{
		voucherFixture("SAVE20", enums.DiscountTypePercentage, 20, true, testNow.AddDate(0, 1, 0), 50, 100),
		voucherFixture("FIXED10", enums.DiscountTypeFixed, 10, false, testNow.AddDate(0, 1, 0), 10, 40),
		voucherFixture("EXPIRED15", enums.DiscountTypePercentage, 15, true, testNow.AddDate(0, 0, -1), 30, 30),
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubVendorDirectory{}); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(newStubVoucherRepo(), nil); err == nil {
		t.Fatal("expected error without vendor directory")
	}
}

func TestListDerivesStatusAndFiltersByStatus(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(scenarioVouchers()...), stubVendorDirectory{})

	result, err := svc.List(context.Background(), nil, filtering.Criteria{
		Selections: filtering.Selections{FilterStatus: "Active"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Code != "SAVE20" {
		t.Fatalf("expected only SAVE20, got %+v", result.Items)
	}
	if result.Unfiltered != 3 {
		t.Fatalf("expected unfiltered total 3, got %d", result.Unfiltered)
	}
	if result.Stats.Total != 1 || result.Stats.Active != 1 || result.Stats.Redemptions != 50 || result.Stats.AverageProgress != 50 {
		t.Fatalf("stats should cover only the filtered rows, got %+v", result.Stats)
	}
	if len(result.AppliedFilters) != 1 || result.AppliedFilters[0].Value != "Active" {
		t.Fatalf("unexpected applied filters %+v", result.AppliedFilters)
	}
}

func TestListUnfilteredStats(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(scenarioVouchers()...), stubVendorDirectory{})

	result, err := svc.List(context.Background(), nil, filtering.Criteria{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := Stats{Total: 3, Active: 1, Inactive: 1, Expired: 1, Redemptions: 90, AverageProgress: 58}
	if result.Stats != want {
		t.Fatalf("expected %+v got %+v", want, result.Stats)
	}
	statuses := map[string]lifecycle.Status{}
	for _, item := range result.Items {
		statuses[item.Code] = item.Status
	}
	if statuses["FIXED10"] != lifecycle.StatusInactive || statuses["EXPIRED15"] != lifecycle.StatusExpired {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
}

func TestListSearchAndTypeFilterCombine(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(scenarioVouchers()...), stubVendorDirectory{})

	result, err := svc.List(context.Background(), nil, filtering.Criteria{
		Query:      "15",
		Selections: filtering.Selections{FilterType: "percentage"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Code != "EXPIRED15" {
		t.Fatalf("expected EXPIRED15, got %+v", result.Items)
	}
}

func TestListVendorScopeRestrictsRows(t *testing.T) {
	vendorID := uuid.New()
	vouchers := scenarioVouchers()
	vouchers[0].VendorID = &vendorID
	svc := newTestService(t, newStubVoucherRepo(vouchers...), stubVendorDirectory{vendorID: "Lakeside Hall"})

	result, err := svc.List(context.Background(), &vendorID, filtering.Criteria{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one vendor voucher, got %d", len(result.Items))
	}
	if result.Items[0].VendorName != "Lakeside Hall" || result.Items[0].Scope != ScopeVendor {
		t.Fatalf("unexpected vendor fields %+v", result.Items[0])
	}
}

func TestListDependencyError(t *testing.T) {
	repo := newStubVoucherRepo()
	repo.listErr = errors.New("boom")
	svc := newTestService(t, repo, stubVendorDirectory{})

	_, err := svc.List(context.Background(), nil, filtering.Criteria{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestCreateNormalizesCodeAndDefaults(t *testing.T) {
	repo := newStubVoucherRepo()
	svc := newTestService(t, repo, stubVendorDirectory{})

	dto, err := svc.Create(context.Background(), nil, CreateVoucherInput{
		Code:          "  summer-25 ",
		Title:         "Summer",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(25),
		IsActive:      true,
		ValidFrom:     testNow,
		ValidUntil:    testNow.AddDate(0, 2, 0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Code != "SUMMER-25" {
		t.Fatalf("expected upper-cased code, got %q", dto.Code)
	}
	if dto.PerUserLimit != 1 {
		t.Fatalf("expected per-user limit default 1, got %d", dto.PerUserLimit)
	}
	if dto.Scope != ScopePlatform || dto.Status != lifecycle.StatusActive {
		t.Fatalf("unexpected derived fields %+v", dto)
	}
}

func TestCreateVendorScopeForcesVendor(t *testing.T) {
	vendorID := uuid.New()
	other := uuid.New()
	repo := newStubVoucherRepo()
	svc := newTestService(t, repo, stubVendorDirectory{vendorID: "Green Acres"})

	dto, err := svc.Create(context.Background(), &vendorID, CreateVoucherInput{
		Code:          "ACRES10",
		Title:         "Acres",
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(10),
		VendorID:      &other,
		ValidFrom:     testNow,
		ValidUntil:    testNow.AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.VendorID == nil || *dto.VendorID != vendorID {
		t.Fatalf("expected vendor %s, got %v", vendorID, dto.VendorID)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(), stubVendorDirectory{})

	_, err := svc.Create(context.Background(), nil, CreateVoucherInput{
		Code:          "x",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(120),
		ValidFrom:     testNow,
		ValidUntil:    testNow,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"code", "title", "discount_value", "valid_until"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected %s in details %+v", field, details)
		}
	}
}

func TestCreateDuplicateCodeConflict(t *testing.T) {
	repo := newStubVoucherRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	svc := newTestService(t, repo, stubVendorDirectory{})

	_, err := svc.Create(context.Background(), nil, CreateVoucherInput{
		Code:          "SAVE20",
		Title:         "Save",
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(20),
		ValidFrom:     testNow,
		ValidUntil:    testNow.AddDate(0, 1, 0),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetOtherVendorVoucherNotFound(t *testing.T) {
	owner := uuid.New()
	caller := uuid.New()
	v := scenarioVouchers()[0]
	v.VendorID = &owner
	svc := newTestService(t, newStubVoucherRepo(v), stubVendorDirectory{owner: "Owner"})

	_, err := svc.Get(context.Background(), &caller, v.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	dto, err := svc.Get(context.Background(), nil, v.ID)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if dto.VendorName != "Owner" {
		t.Fatalf("expected vendor name, got %q", dto.VendorName)
	}
}

func TestGetDependencyError(t *testing.T) {
	repo := newStubVoucherRepo()
	repo.findErr = errors.New("boom")
	svc := newTestService(t, repo, stubVendorDirectory{})

	_, err := svc.Get(context.Background(), nil, uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSetActiveTogglesStatus(t *testing.T) {
	v := scenarioVouchers()[1]
	repo := newStubVoucherRepo(v)
	svc := newTestService(t, repo, stubVendorDirectory{})

	dto, err := svc.SetActive(context.Background(), nil, v.ID, true)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if dto.Status != lifecycle.StatusActive {
		t.Fatalf("expected active, got %s", dto.Status)
	}
	if _, err := svc.SetActive(context.Background(), nil, v.ID, true); err != nil {
		t.Fatalf("repeat set active: %v", err)
	}
	if repo.updated != 1 {
		t.Fatalf("expected a single write, got %d", repo.updated)
	}
}

func TestUpdateRejectsInvertedWindow(t *testing.T) {
	v := scenarioVouchers()[0]
	svc := newTestService(t, newStubVoucherRepo(v), stubVendorDirectory{})

	until := v.ValidFrom.Add(-time.Hour)
	_, err := svc.Update(context.Background(), nil, v.ID, UpdateVoucherInput{ValidUntil: &until})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateAppliesFields(t *testing.T) {
	v := scenarioVouchers()[0]
	repo := newStubVoucherRepo(v)
	svc := newTestService(t, repo, stubVendorDirectory{})

	title := "  Bigger savings "
	limit := int64(200)
	dto, err := svc.Update(context.Background(), nil, v.ID, UpdateVoucherInput{Title: &title, TotalUsageLimit: &limit})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Title != "Bigger savings" || dto.TotalUsageLimit != 200 || dto.Progress != 25 {
		t.Fatalf("unexpected update result %+v", dto)
	}
}

func TestDeleteMissingNotFound(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(), stubVendorDirectory{})
	err := svc.Delete(context.Background(), nil, uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportUsesFilteredRows(t *testing.T) {
	svc := newTestService(t, newStubVoucherRepo(scenarioVouchers()...), stubVendorDirectory{})

	doc, err := svc.Export(context.Background(), nil, filtering.Criteria{
		Selections: filtering.Selections{FilterStatus: "Expired"},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(doc.Rows) != 1 || doc.Rows[0][0] != "EXPIRED15" {
		t.Fatalf("unexpected rows %+v", doc.Rows)
	}
	if len(doc.Columns) != len(ReportSource.Columns) {
		t.Fatalf("expected %d columns got %d", len(ReportSource.Columns), len(doc.Columns))
	}
	if !doc.HasFilters() {
		t.Fatal("expected applied filters on document")
	}
	if doc.Stats[0].Value != "1" {
		t.Fatalf("expected total stat 1, got %+v", doc.Stats[0])
	}
}
