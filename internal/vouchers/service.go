package vouchers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/db"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

var (
	codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
	hundred     = decimal.NewFromInt(100)
)

type voucherRepository interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Voucher, error)
	Update(ctx context.Context, voucher *models.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, vendorID *uuid.UUID) ([]models.Voucher, error)
}

type vendorDirectory interface {
	BusinessNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service exposes voucher management. A nil vendorScope acts with admin
// visibility over every voucher; a non-nil scope confines the caller to that
// vendor's vouchers.
type Service interface {
	Create(ctx context.Context, vendorScope *uuid.UUID, input CreateVoucherInput) (*VoucherDTO, error)
	Get(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID) (*VoucherDTO, error)
	Update(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID, input UpdateVoucherInput) (*VoucherDTO, error)
	SetActive(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID, active bool) (*VoucherDTO, error)
	Delete(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, vendorScope *uuid.UUID, criteria filtering.Criteria) (*ListResult, error)
	Export(ctx context.Context, vendorScope *uuid.UUID, criteria filtering.Criteria) (*report.Document, error)
}

type service struct {
	repo    voucherRepository
	vendors vendorDirectory
	now     func() time.Time
}

// NewService builds a voucher service with the provided repositories.
func NewService(repo voucherRepository, vendors vendorDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("voucher repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor directory required")
	}
	return &service{repo: repo, vendors: vendors, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, vendorScope *uuid.UUID, input CreateVoucherInput) (*VoucherDTO, error) {
	if vendorScope != nil {
		input.VendorID = vendorScope
	}
	input.Code = normalizeCode(input.Code)
	input.Title = strings.TrimSpace(input.Title)
	if input.PerUserLimit == 0 {
		input.PerUserLimit = 1
	}

	voucher := &models.Voucher{
		Code:            input.Code,
		Title:           input.Title,
		Description:     trimOptional(input.Description),
		DiscountType:    input.DiscountType,
		DiscountValue:   input.DiscountValue,
		MinOrderAmount:  input.MinOrderAmount,
		MaxDiscount:     input.MaxDiscount,
		VendorID:        input.VendorID,
		IsActive:        input.IsActive,
		IsPublic:        input.IsPublic,
		ValidFrom:       input.ValidFrom.UTC(),
		ValidUntil:      input.ValidUntil.UTC(),
		TotalUsageLimit: input.TotalUsageLimit,
		PerUserLimit:    input.PerUserLimit,
	}
	if err := validateVoucher(voucher); err != nil {
		return nil, err
	}

	vendorName, err := s.vendorName(ctx, voucher.VendorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, voucher); err != nil {
		if db.IsUniqueViolation(err, CodeConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "voucher code already exists").WithDetails(map[string]string{"code": voucher.Code})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create voucher")
	}
	return FromModel(voucher, vendorName, s.now()), nil
}

func (s *service) Get(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID) (*VoucherDTO, error) {
	voucher, err := s.load(ctx, vendorScope, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, voucher)
}

func (s *service) Update(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID, input UpdateVoucherInput) (*VoucherDTO, error) {
	voucher, err := s.load(ctx, vendorScope, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		voucher.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		voucher.Description = trimOptional(input.Description)
	}
	if input.DiscountType != nil {
		voucher.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		voucher.DiscountValue = *input.DiscountValue
	}
	if input.MinOrderAmount != nil {
		voucher.MinOrderAmount = *input.MinOrderAmount
	}
	if input.MaxDiscount != nil {
		if input.MaxDiscount.IsZero() {
			voucher.MaxDiscount = nil
		} else {
			v := *input.MaxDiscount
			voucher.MaxDiscount = &v
		}
	}
	if input.IsPublic != nil {
		voucher.IsPublic = *input.IsPublic
	}
	if input.ValidFrom != nil {
		voucher.ValidFrom = input.ValidFrom.UTC()
	}
	if input.ValidUntil != nil {
		voucher.ValidUntil = input.ValidUntil.UTC()
	}
	if input.TotalUsageLimit != nil {
		voucher.TotalUsageLimit = *input.TotalUsageLimit
	}
	if input.PerUserLimit != nil {
		voucher.PerUserLimit = *input.PerUserLimit
	}

	if err := validateVoucher(voucher); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, voucher); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update voucher")
	}
	return s.toDTO(ctx, voucher)
}

func (s *service) SetActive(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID, active bool) (*VoucherDTO, error) {
	voucher, err := s.load(ctx, vendorScope, id)
	if err != nil {
		return nil, err
	}
	if voucher.IsActive != active {
		voucher.IsActive = active
		if err := s.repo.Update(ctx, voucher); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update voucher")
		}
	}
	return s.toDTO(ctx, voucher)
}

func (s *service) Delete(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID) error {
	if _, err := s.load(ctx, vendorScope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete voucher")
	}
	return nil
}

func (s *service) List(ctx context.Context, vendorScope *uuid.UUID, criteria filtering.Criteria) (*ListResult, error) {
	all, err := s.listAll(ctx, vendorScope)
	if err != nil {
		return nil, err
	}
	filtered := Evaluator.Evaluate(all, criteria)
	return &ListResult{
		Items:          filtered,
		Stats:          ComputeStats(filtered),
		AppliedFilters: Evaluator.Applied(criteria.Selections),
		Unfiltered:     len(all),
	}, nil
}

func (s *service) Export(ctx context.Context, vendorScope *uuid.UUID, criteria filtering.Criteria) (*report.Document, error) {
	result, err := s.List(ctx, vendorScope, criteria)
	if err != nil {
		return nil, err
	}
	return report.Build(ReportSource, result.Items, criteria, result.AppliedFilters, result.Stats.ReportStats(), s.now().UTC()), nil
}

func (s *service) listAll(ctx context.Context, vendorScope *uuid.UUID) ([]VoucherDTO, error) {
	rows, err := s.repo.List(ctx, vendorScope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vouchers")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, v := range rows {
		if v.VendorID != nil {
			ids = append(ids, *v.VendorID)
		}
	}
	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		names, err = s.vendors.BusinessNames(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor names")
		}
	}

	now := s.now()
	out := make([]VoucherDTO, 0, len(rows))
	for i := range rows {
		name := ""
		if rows[i].VendorID != nil {
			name = names[*rows[i].VendorID]
		}
		out = append(out, *FromModel(&rows[i], name, now))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, vendorScope *uuid.UUID, id uuid.UUID) (*models.Voucher, error) {
	voucher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voucher")
	}
	if vendorScope != nil && (voucher.VendorID == nil || *voucher.VendorID != *vendorScope) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voucher not found")
	}
	return voucher, nil
}

func (s *service) toDTO(ctx context.Context, voucher *models.Voucher) (*VoucherDTO, error) {
	name, err := s.vendorName(ctx, voucher.VendorID)
	if err != nil {
		return nil, err
	}
	return FromModel(voucher, name, s.now()), nil
}

func (s *service) vendorName(ctx context.Context, vendorID *uuid.UUID) (string, error) {
	if vendorID == nil {
		return "", nil
	}
	names, err := s.vendors.BusinessNames(ctx, []uuid.UUID{*vendorID})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	name, ok := names[*vendorID]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"vendor_id": "unknown vendor"})
	}
	return name, nil
}

func validateVoucher(v *models.Voucher) error {
	fields := pkgerrors.Fields{}
	if !codePattern.MatchString(v.Code) {
		fields.Add("code", "must be 3-32 characters of A-Z, 0-9, _ or -")
	}
	if v.Title == "" {
		fields.Add("title", "is required")
	}
	switch v.DiscountType {
	case enums.DiscountTypePercentage:
		if !v.DiscountValue.IsPositive() || v.DiscountValue.GreaterThan(hundred) {
			fields.Add("discount_value", "must be greater than 0 and at most 100")
		}
	case enums.DiscountTypeFixed:
		if !v.DiscountValue.IsPositive() {
			fields.Add("discount_value", "must be greater than 0")
		}
	default:
		fields.Add("discount_type", "must be percentage or fixed")
	}
	if v.MinOrderAmount.IsNegative() {
		fields.Add("min_order_amount", "must not be negative")
	}
	if v.MaxDiscount != nil && !v.MaxDiscount.IsPositive() {
		fields.Add("max_discount", "must be greater than 0")
	}
	if v.ValidFrom.IsZero() {
		fields.Add("valid_from", "is required")
	}
	if v.ValidUntil.IsZero() {
		fields.Add("valid_until", "is required")
	} else if !v.ValidUntil.After(v.ValidFrom) {
		fields.Add("valid_until", "must be after valid_from")
	}
	if v.TotalUsageLimit < 0 {
		fields.Add("total_usage_limit", "must not be negative")
	}
	if v.PerUserLimit < 0 {
		fields.Add("per_user_limit", "must not be negative")
	}
	return fields.Err()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
