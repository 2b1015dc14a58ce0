package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type vendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	List(ctx context.Context) ([]models.Vendor, error)
	ListingCounts(ctx context.Context) (map[uuid.UUID]int64, error)
}

type listingCounter interface {
	CountByStatusForVendor(ctx context.Context, vendorID uuid.UUID) (map[enums.ListingStatus]int64, error)
}

type voucherCounter interface {
	CountActiveForVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
}

// Service exposes vendor moderation and vendor self-service operations.
type Service interface {
	List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error)
	Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	UpdateStatus(ctx context.Context, actor events.ActorRef, id uuid.UUID, action StatusAction) (*VendorDTO, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*VendorDTO, error)
	UpdateProfile(ctx context.Context, vendorID uuid.UUID, input UpdateProfileInput) (*VendorDTO, error)
	Dashboard(ctx context.Context, vendorID uuid.UUID) (*DashboardDTO, error)
}

// ServiceParams packages the vendor service dependencies.
type ServiceParams struct {
	Repo      vendorRepository
	Listings  listingCounter
	Vouchers  voucherCounter
	Publisher events.Publisher
	Logger    *logger.Logger
}

type service struct {
	repo      vendorRepository
	listings  listingCounter
	vouchers  voucherCounter
	publisher events.Publisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a vendor service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if params.Listings == nil {
		return nil, fmt.Errorf("listing counter required")
	}
	if params.Vouchers == nil {
		return nil, fmt.Errorf("voucher counter required")
	}
	publisher := params.Publisher
	if publisher == nil {
		publisher = events.NewLogPublisher(params.Logger)
	}
	return &service{
		repo:      params.Repo,
		listings:  params.Listings,
		vouchers:  params.Vouchers,
		publisher: publisher,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	counts, err := s.repo.ListingCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vendor listings")
	}

	all := make([]VendorDTO, 0, len(rows))
	for i := range rows {
		all = append(all, *FromModel(&rows[i], counts[rows[i].ID]))
	}
	filtered := Evaluator.Evaluate(all, criteria)
	return &ListResult{
		Items:          filtered,
		Stats:          ComputeStats(filtered),
		AppliedFilters: Evaluator.Applied(criteria.Selections),
		Unfiltered:     len(all),
	}, nil
}

func (s *service) Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error) {
	result, err := s.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.Build(ReportSource, result.Items, criteria, result.AppliedFilters, result.Stats.ReportStats(), s.now().UTC()), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withListingCount(ctx, vendor)
}

func (s *service) UpdateStatus(ctx context.Context, actor events.ActorRef, id uuid.UUID, action StatusAction) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	from := vendor.Status
	to := action.Target(from)
	if !from.CanTransitionTo(to) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor status transition not allowed").WithDetails(map[string]string{
			"from":   from.String(),
			"action": string(action),
		})
	}

	vendor.Status = to
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor status")
	}

	event := events.Event{
		Type:          events.TypeVendorStatusChanged,
		AggregateType: "vendor",
		AggregateID:   vendor.ID,
		Actor:         &actor,
		Data: map[string]string{
			"from":   from.String(),
			"to":     to.String(),
			"action": string(action),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithField(ctx, "vendor_id", vendor.ID.String()), "publish vendor status event", err)
	}

	return s.withListingCount(ctx, vendor)
}

func (s *service) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*VendorDTO, error) {
	vendor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.IsVerified != verified {
		vendor.IsVerified = verified
		if err := s.repo.Update(ctx, vendor); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor verification")
		}
	}
	return s.withListingCount(ctx, vendor)
}

func (s *service) UpdateProfile(ctx context.Context, vendorID uuid.UUID, input UpdateProfileInput) (*VendorDTO, error) {
	vendor, err := s.load(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.Fields{}
	if input.BusinessName != nil {
		if name := strings.TrimSpace(*input.BusinessName); name != "" {
			vendor.BusinessName = name
		} else {
			fields.Add("business_name", "must not be empty")
		}
	}
	if input.OwnerName != nil {
		if name := strings.TrimSpace(*input.OwnerName); name != "" {
			vendor.OwnerName = name
		} else {
			fields.Add("owner_name", "must not be empty")
		}
	}
	if input.City != nil {
		if city := strings.TrimSpace(*input.City); city != "" {
			vendor.City = city
		} else {
			fields.Add("city", "must not be empty")
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if input.Phone != nil {
		vendor.Phone = trimOptional(input.Phone)
	}
	if input.Description != nil {
		vendor.Description = trimOptional(input.Description)
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor profile")
	}
	return s.withListingCount(ctx, vendor)
}

func (s *service) Dashboard(ctx context.Context, vendorID uuid.UUID) (*DashboardDTO, error) {
	vendor, err := s.load(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.listings.CountByStatusForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count listings")
	}
	activeVouchers, err := s.vouchers.CountActiveForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vouchers")
	}

	dto := &DashboardDTO{
		VendorID:         vendor.ID,
		Status:           vendor.Status,
		ListingsByStatus: map[string]int64{},
		BookingCount:     vendor.BookingCount,
		Revenue:          vendor.Revenue,
		Rating:           vendor.Rating,
		ActiveVouchers:   activeVouchers,
	}
	for _, status := range []enums.ListingStatus{enums.ListingStatusDraft, enums.ListingStatusPublished, enums.ListingStatusArchived} {
		count := byStatus[status]
		dto.ListingsByStatus[status.String()] = count
		dto.TotalListings += count
	}
	return dto, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}

func (s *service) withListingCount(ctx context.Context, vendor *models.Vendor) (*VendorDTO, error) {
	byStatus, err := s.listings.CountByStatusForVendor(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count listings")
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	return FromModel(vendor, total), nil
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
