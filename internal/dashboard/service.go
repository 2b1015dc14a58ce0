package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
)

type vendorCounter interface {
	CountByStatus(ctx context.Context) (map[enums.VendorStatus]int64, error)
}

type voucherLister interface {
	List(ctx context.Context, vendorID *uuid.UUID) ([]models.Voucher, error)
}

type listingCounter interface {
	CountByCategory(ctx context.Context) (map[enums.ListingCategory]int64, error)
}

type userCounter interface {
	CountByRole(ctx context.Context) (map[enums.UserRole]int64, error)
}

// Service builds the admin overview.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

// ServiceParams packages the repositories the overview reads from.
type ServiceParams struct {
	Vendors  vendorCounter
	Vouchers voucherLister
	Listings listingCounter
	Users    userCounter
}

type service struct {
	vendors  vendorCounter
	vouchers voucherLister
	listings listingCounter
	users    userCounter
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Vendors == nil || params.Vouchers == nil || params.Listings == nil || params.Users == nil {
		return nil, fmt.Errorf("dashboard repositories are required")
	}
	return &service{
		vendors:  params.Vendors,
		vouchers: params.Vouchers,
		listings: params.Listings,
		users:    params.Users,
		now:      time.Now,
	}, nil
}

var (
	vendorStatuses = []enums.VendorStatus{
		enums.VendorStatusPending,
		enums.VendorStatusApproved,
		enums.VendorStatusSuspended,
		enums.VendorStatusRejected,
	}
	listingCategories = []enums.ListingCategory{
		enums.ListingCategoryVenue,
		enums.ListingCategoryFarmhouse,
		enums.ListingCategoryCatering,
		enums.ListingCategoryPhotography,
	}
	userRoles = []enums.UserRole{
		enums.UserRoleCustomer,
		enums.UserRoleVendor,
		enums.UserRoleAdmin,
	}
)

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	now := s.now()

	vendorCounts, err := s.vendors.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vendors")
	}
	listingCounts, err := s.listings.CountByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count listings")
	}
	userCounts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	vouchers, err := s.vouchers.List(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vouchers")
	}

	summary := VoucherSummary{Total: len(vouchers)}
	for _, v := range vouchers {
		summary.Add(lifecycle.Derive(v.IsActive, v.ValidUntil, now))
	}

	return &Overview{
		Vendors:     breakdown(vendorStatuses, vendorCounts),
		Vouchers:    summary,
		Listings:    breakdown(listingCategories, listingCounts),
		Users:       breakdown(userRoles, userCounts),
		GeneratedAt: now.UTC(),
	}, nil
}

// breakdown reports every known key, then any unexpected ones from the store.
func breakdown[K ~string](known []K, counts map[K]int64) CountBreakdown {
	out := CountBreakdown{By: make(map[string]int64, len(known))}
	for _, k := range known {
		out.By[string(k)] = 0
	}
	for k, n := range counts {
		out.By[string(k)] += n
		out.Total += n
	}
	return out
}
