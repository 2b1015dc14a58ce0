// Package seed loads the static demo dataset the dashboards were designed
// against. Every record is matched on its natural key, so re-running is safe.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/security"
	"github.com/venuehub/venuehub-backend/pkg/types"
)

// Options controls the seeded credentials.
type Options struct {
	AdminEmail    string
	AdminPassword string
	// UserPassword is shared by every seeded customer and vendor account.
	UserPassword string
	Passwords    config.PasswordConfig
	Now          time.Time
}

// Summary counts the records created by a run. Existing records are skipped.
type Summary struct {
	Users       int `json:"users"`
	Vendors     int `json:"vendors"`
	Listings    int `json:"listings"`
	Vouchers    int `json:"vouchers"`
	Preferences int `json:"preferences"`
}

// Seeder writes the dataset.
type Seeder struct {
	db   *gorm.DB
	logg *logger.Logger
	opts Options
}

func New(db *gorm.DB, logg *logger.Logger, opts Options) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("database required")
	}
	if strings.TrimSpace(opts.AdminEmail) == "" {
		return nil, fmt.Errorf("admin email required")
	}
	if err := security.CheckPasswordPolicy(opts.AdminPassword, opts.Passwords); err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}
	if err := security.CheckPasswordPolicy(opts.UserPassword, opts.Passwords); err != nil {
		return nil, fmt.Errorf("user password: %w", err)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Seeder{db: db, logg: logg, opts: opts}, nil
}

// Run seeds every entity. A failing record does not stop the others; all
// failures are returned together.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var (
		summary Summary
		errs    error
	)

	adminHash, err := security.HashPassword(s.opts.AdminPassword, s.opts.Passwords)
	if err != nil {
		return summary, fmt.Errorf("hash admin password: %w", err)
	}
	userHash, err := security.HashPassword(s.opts.UserPassword, s.opts.Passwords)
	if err != nil {
		return summary, fmt.Errorf("hash user password: %w", err)
	}

	admin := userSeed{Email: s.opts.AdminEmail, FirstName: "Platform", LastName: "Admin", Role: enums.UserRoleAdmin}
	if _, created, err := s.user(ctx, admin, adminHash); err != nil {
		errs = multierr.Append(errs, err)
	} else if created {
		summary.Users++
	}
	for _, c := range customers {
		if _, created, err := s.user(ctx, c, userHash); err != nil {
			errs = multierr.Append(errs, err)
		} else if created {
			summary.Users++
		}
	}

	vendorIDs := make(map[string]uuid.UUID, len(vendorsData))
	for _, v := range vendorsData {
		user, created, err := s.user(ctx, v.User, userHash)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if created {
			summary.Users++
		}
		id, created, err := s.vendor(ctx, user, v)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if created {
			summary.Vendors++
		}
		vendorIDs[v.User.Email] = id
	}

	for _, l := range listingsData {
		vendorID, ok := vendorIDs[l.VendorEmail]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("listing %q: vendor %s not seeded", l.Title, l.VendorEmail))
			continue
		}
		created, err := s.listing(ctx, vendorID, l)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if created {
			summary.Listings++
		}
	}

	for _, v := range vouchersData {
		var vendorID *uuid.UUID
		if v.VendorEmail != "" {
			id, ok := vendorIDs[v.VendorEmail]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("voucher %s: vendor %s not seeded", v.Code, v.VendorEmail))
				continue
			}
			vendorID = &id
		}
		created, err := s.voucher(ctx, vendorID, v)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if created {
			summary.Vouchers++
		}
	}

	for _, p := range preferencesData {
		created, err := s.preference(ctx, p)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if created {
			summary.Preferences++
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"users":       summary.Users,
			"vendors":     summary.Vendors,
			"listings":    summary.Listings,
			"vouchers":    summary.Vouchers,
			"preferences": summary.Preferences,
			"failures":    len(multierr.Errors(errs)),
		}), "seed complete")
	}
	return summary, errs
}

func (s *Seeder) user(ctx context.Context, u userSeed, hash string) (*models.User, bool, error) {
	verifiedAt := s.opts.Now.UTC()
	user := models.User{
		Email:           strings.ToLower(u.Email),
		PasswordHash:    hash,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		IsActive:        true,
		EmailVerifiedAt: &verifiedAt,
	}
	res := s.db.WithContext(ctx).Where("email = ?", user.Email).FirstOrCreate(&user)
	if res.Error != nil {
		return nil, false, fmt.Errorf("user %s: %w", u.Email, res.Error)
	}
	return &user, res.RowsAffected > 0, nil
}

func (s *Seeder) vendor(ctx context.Context, user *models.User, v vendorSeed) (uuid.UUID, bool, error) {
	vendor := models.Vendor{
		UserID:       user.ID,
		BusinessName: v.BusinessName,
		OwnerName:    v.User.FirstName + " " + v.User.LastName,
		Email:        user.Email,
		City:         v.City,
		Category:     v.Category,
		Status:       v.Status,
		IsVerified:   v.Verified,
		BookingCount: v.Bookings,
		Revenue:      mustDecimal(v.Revenue),
		Rating:       v.Rating,
		Description:  optional(v.Description),
	}
	res := s.db.WithContext(ctx).Where("user_id = ?", user.ID).FirstOrCreate(&vendor)
	if res.Error != nil {
		return uuid.Nil, false, fmt.Errorf("vendor %s: %w", v.BusinessName, res.Error)
	}
	return vendor.ID, res.RowsAffected > 0, nil
}

func (s *Seeder) listing(ctx context.Context, vendorID uuid.UUID, l listingSeed) (bool, error) {
	details, err := types.FromStruct(l.Details)
	if err != nil {
		return false, fmt.Errorf("listing %q details: %w", l.Title, err)
	}
	category := categoryOf(l.Details)
	listing := models.Listing{
		VendorID:    vendorID,
		Category:    category,
		Title:       l.Title,
		City:        l.City,
		MinGuests:   l.MinGuests,
		MaxGuests:   l.MaxGuests,
		BasePrice:   mustDecimal(l.BasePrice),
		PricingUnit: category.DefaultPricingUnit(),
		Amenities:   types.StringList(l.Amenities).Normalize(),
		Details:     details,
		Status:      l.Status,
	}
	res := s.db.WithContext(ctx).
		Where("vendor_id = ? AND title = ?", vendorID, l.Title).
		FirstOrCreate(&listing)
	if res.Error != nil {
		return false, fmt.Errorf("listing %q: %w", l.Title, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Seeder) voucher(ctx context.Context, vendorID *uuid.UUID, v voucherSeed) (bool, error) {
	voucher := models.Voucher{
		Code:              v.Code,
		Title:             v.Title,
		DiscountType:      v.Type,
		DiscountValue:     mustDecimal(v.Value),
		MinOrderAmount:    mustDecimal(v.MinOrder),
		VendorID:          vendorID,
		IsActive:          v.Active,
		IsPublic:          v.Public,
		ValidFrom:         s.opts.Now.Add(v.From).UTC(),
		ValidUntil:        s.opts.Now.Add(v.Until).UTC(),
		CurrentUsageCount: v.Used,
		TotalUsageLimit:   v.Limit,
		PerUserLimit:      1,
	}
	if v.MaxDiscount != "" {
		max := mustDecimal(v.MaxDiscount)
		voucher.MaxDiscount = &max
	}
	res := s.db.WithContext(ctx).Where("code = ?", v.Code).FirstOrCreate(&voucher)
	if res.Error != nil {
		return false, fmt.Errorf("voucher %s: %w", v.Code, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Seeder) preference(ctx context.Context, p preferenceSeed) (bool, error) {
	pref := models.Preference{
		Name:        p.Name,
		Type:        p.Type,
		Description: optional(p.Description),
		IsVisible:   p.Visible,
		SortOrder:   p.Order,
	}
	res := s.db.WithContext(ctx).Where("name = ? AND type = ?", p.Name, p.Type).FirstOrCreate(&pref)
	if res.Error != nil {
		return false, fmt.Errorf("preference %s: %w", p.Name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func categoryOf(details any) enums.ListingCategory {
	switch details.(type) {
	case listings.VenueDetails:
		return enums.ListingCategoryVenue
	case listings.FarmhouseDetails:
		return enums.ListingCategoryFarmhouse
	case listings.CateringDetails:
		return enums.ListingCategoryCatering
	default:
		return enums.ListingCategoryPhotography
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
