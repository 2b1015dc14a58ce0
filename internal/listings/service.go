package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/pagination"
	"github.com/venuehub/venuehub-backend/pkg/types"
	"github.com/venuehub/venuehub-backend/pkg/visibility"
)

const maxTitleLength = 120

type listingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ListingStatus) error
	List(ctx context.Context, vendorID *uuid.UUID) ([]models.Listing, error)
	ListPublic(ctx context.Context, query PublicQuery) ([]models.Listing, error)
}

type vendorLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	BusinessNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service exposes vendor listing management, the admin listing screen and
// the customer browse feed.
type Service interface {
	CreateVenue(ctx context.Context, actor events.ActorRef, input CreateVenueInput) (*ListingDTO, error)
	CreateFarmhouse(ctx context.Context, actor events.ActorRef, input CreateFarmhouseInput) (*ListingDTO, error)
	CreateCateringPackage(ctx context.Context, actor events.ActorRef, input CreateCateringPackageInput) (*ListingDTO, error)
	CreatePhotographyPackage(ctx context.Context, actor events.ActorRef, input CreatePhotographyPackageInput) (*ListingDTO, error)
	UpdateStatus(ctx context.Context, actor events.ActorRef, id uuid.UUID, status enums.ListingStatus) (*ListingDTO, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID, criteria filtering.Criteria) (*ListResult, error)
	List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error)
	Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error)
	Browse(ctx context.Context, query PublicQuery) (*pagination.Page[ListingDTO], error)
	GetPublic(ctx context.Context, id uuid.UUID, city string) (*ListingDTO, error)
}

// ServiceParams packages the listing service dependencies.
type ServiceParams struct {
	Repo      listingRepository
	Vendors   vendorLookup
	Publisher events.Publisher
	Logger    *logger.Logger
}

type service struct {
	repo      listingRepository
	vendors   vendorLookup
	publisher events.Publisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a listing service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("listing repository required")
	}
	if params.Vendors == nil {
		return nil, fmt.Errorf("vendor lookup required")
	}
	publisher := params.Publisher
	if publisher == nil {
		publisher = events.NewLogPublisher(params.Logger)
	}
	return &service{
		repo:      params.Repo,
		vendors:   params.Vendors,
		publisher: publisher,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) CreateVenue(ctx context.Context, actor events.ActorRef, input CreateVenueInput) (*ListingDTO, error) {
	return s.create(ctx, actor, input.BaseListingInput, input.Details)
}

func (s *service) CreateFarmhouse(ctx context.Context, actor events.ActorRef, input CreateFarmhouseInput) (*ListingDTO, error) {
	return s.create(ctx, actor, input.BaseListingInput, input.Details)
}

func (s *service) CreateCateringPackage(ctx context.Context, actor events.ActorRef, input CreateCateringPackageInput) (*ListingDTO, error) {
	return s.create(ctx, actor, input.BaseListingInput, input.Details)
}

func (s *service) CreatePhotographyPackage(ctx context.Context, actor events.ActorRef, input CreatePhotographyPackageInput) (*ListingDTO, error) {
	return s.create(ctx, actor, input.BaseListingInput, input.Details)
}

func (s *service) create(ctx context.Context, actor events.ActorRef, base BaseListingInput, d details) (*ListingDTO, error) {
	if actor.VendorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile required")
	}
	vendor, err := s.loadVendor(ctx, *actor.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != enums.VendorStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor is not approved").WithDetails(map[string]string{"status": vendor.Status.String()})
	}

	category := d.category()
	d = normalize(d)
	fields := pkgerrors.Fields{}
	base = validateBase(base, category, fields)
	d.validate(fields)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	detailsObj, err := types.FromStruct(d)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode listing details")
	}

	status := enums.ListingStatusDraft
	if base.Publish {
		status = enums.ListingStatusPublished
	}
	listing := &models.Listing{
		VendorID:    vendor.ID,
		Category:    category,
		Title:       base.Title,
		Description: base.Description,
		City:        base.City,
		Address:     base.Address,
		MinGuests:   base.MinGuests,
		MaxGuests:   base.MaxGuests,
		BasePrice:   base.BasePrice,
		PricingUnit: *base.PricingUnit,
		Amenities:   types.StringList(base.Amenities).Normalize(),
		Details:     detailsObj,
		Status:      status,
	}
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create listing")
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeListingCreated,
		AggregateType: "listing",
		AggregateID:   listing.ID,
		Actor:         &actor,
		Data: map[string]any{
			"vendor_id": vendor.ID.String(),
			"category":  category.String(),
			"title":     listing.Title,
			"city":      listing.City,
			"status":    status.String(),
		},
	})
	return FromModel(listing, vendor.BusinessName), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor events.ActorRef, id uuid.UUID, status enums.ListingStatus) (*ListingDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"status": "must be draft, published or archived"})
	}
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if actor.VendorID != nil && *actor.VendorID != listing.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}
	if listing.Status == status {
		return s.withVendorName(ctx, listing)
	}
	if !listing.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "listing status transition not allowed").WithDetails(map[string]string{
			"from": listing.Status.String(),
			"to":   status.String(),
		})
	}
	if status == enums.ListingStatusPublished {
		vendor, err := s.loadVendor(ctx, listing.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor.Status != enums.VendorStatusApproved {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor is not approved")
		}
	}

	from := listing.Status
	if err := s.repo.UpdateStatus(ctx, listing.ID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update listing status")
	}
	listing.Status = status

	s.publish(ctx, events.Event{
		Type:          events.TypeListingStatusChanged,
		AggregateType: "listing",
		AggregateID:   listing.ID,
		Actor:         &actor,
		Data:          map[string]string{"from": from.String(), "to": status.String()},
	})
	return s.withVendorName(ctx, listing)
}

func (s *service) ListForVendor(ctx context.Context, vendorID uuid.UUID, criteria filtering.Criteria) (*ListResult, error) {
	return s.list(ctx, &vendorID, criteria)
}

func (s *service) List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error) {
	return s.list(ctx, nil, criteria)
}

func (s *service) Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error) {
	result, err := s.list(ctx, nil, criteria)
	if err != nil {
		return nil, err
	}
	return report.Build(ReportSource, result.Items, criteria, result.AppliedFilters, result.Stats.ReportStats(), s.now().UTC()), nil
}

func (s *service) Browse(ctx context.Context, query PublicQuery) (*pagination.Page[ListingDTO], error) {
	if query.Category != nil && !query.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"category": "unknown category"})
	}
	if _, err := pagination.ParseCursor(query.Pagination.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"cursor": "is invalid"})
	}
	rows, err := s.repo.ListPublic(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list public listings")
	}
	items, err := s.toDTOs(ctx, rows)
	if err != nil {
		return nil, err
	}
	page := pagination.BuildPage(items, query.Pagination.Limit, func(l ListingDTO) pagination.Cursor {
		return pagination.Cursor{CreatedAt: l.CreatedAt, ID: l.ID}
	})
	return &page, nil
}

func (s *service) GetPublic(ctx context.Context, id uuid.UUID, city string) (*ListingDTO, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	vendor, err := s.vendors.FindByID(ctx, listing.VendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	if err := visibility.EnsureListingVisible(visibility.ListingVisibilityInput{
		Vendor:        vendor,
		Listing:       listing,
		RequestedCity: city,
	}); err != nil {
		return nil, err
	}
	return FromModel(listing, vendor.BusinessName), nil
}

func (s *service) list(ctx context.Context, vendorID *uuid.UUID, criteria filtering.Criteria) (*ListResult, error) {
	rows, err := s.repo.List(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list listings")
	}
	all, err := s.toDTOs(ctx, rows)
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

func (s *service) toDTOs(ctx context.Context, rows []models.Listing) ([]ListingDTO, error) {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, l := range rows {
		if _, ok := seen[l.VendorID]; !ok {
			seen[l.VendorID] = struct{}{}
			ids = append(ids, l.VendorID)
		}
	}
	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		var err error
		names, err = s.vendors.BusinessNames(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor names")
		}
	}
	out := make([]ListingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i], names[rows[i].VendorID]))
	}
	return out, nil
}

func (s *service) withVendorName(ctx context.Context, listing *models.Listing) (*ListingDTO, error) {
	items, err := s.toDTOs(ctx, []models.Listing{*listing})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *service) loadVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithField(ctx, "listing_id", event.AggregateID.String()), "publish listing event", err)
	}
}

func validateBase(base BaseListingInput, category enums.ListingCategory, fields pkgerrors.Fields) BaseListingInput {
	base.Title = strings.TrimSpace(base.Title)
	base.City = strings.TrimSpace(base.City)
	base.Description = trimOptional(base.Description)
	base.Address = trimOptional(base.Address)

	if base.Title == "" {
		fields.Add("title", "is required")
	} else if len(base.Title) > maxTitleLength {
		fields.Add("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}
	if base.City == "" {
		fields.Add("city", "is required")
	}
	if base.MinGuests < 0 || base.MaxGuests < 0 {
		fields.Add("guests", "must not be negative")
	} else if base.MaxGuests > 0 && base.MinGuests > base.MaxGuests {
		fields.Add("max_guests", "must be at least min_guests")
	}
	if !base.BasePrice.GreaterThan(decimal.Zero) {
		fields.Add("base_price", "must be greater than 0")
	}
	if base.PricingUnit == nil {
		unit := category.DefaultPricingUnit()
		base.PricingUnit = &unit
	} else if !base.PricingUnit.IsValid() {
		fields.Add("pricing_unit", "must be per_day, per_event, per_plate or per_hour")
	}
	return base
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
