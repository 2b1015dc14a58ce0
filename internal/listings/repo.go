package listings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/pagination"
)

// Repository handles listing persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to listing operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, listing *models.Listing) error {
	if listing == nil {
		return fmt.Errorf("listing is required")
	}
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateStatus moves a listing to status. It reports gorm.ErrRecordNotFound
// when nothing matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ListingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns listings newest first. A non-nil vendorID restricts the
// result to that vendor.
func (r *Repository) List(ctx context.Context, vendorID *uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if vendorID != nil {
		q = q.Where("vendor_id = ?", *vendorID)
	}
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListPublic returns one look-ahead page of published listings from approved
// vendors, newest first.
func (r *Repository) ListPublic(ctx context.Context, query PublicQuery) ([]models.Listing, error) {
	page, err := pagination.Keyset("listings", query.Pagination)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("listings.*").
		Joins("JOIN vendors ON vendors.id = listings.vendor_id").
		Where("listings.status = ?", enums.ListingStatusPublished).
		Where("vendors.status = ?", enums.VendorStatusApproved)

	if query.Category != nil {
		qb = qb.Where("listings.category = ?", *query.Category)
	}
	if city := strings.TrimSpace(query.City); city != "" {
		qb = qb.Where("LOWER(listings.city) = ?", strings.ToLower(city))
	}

	var listings []models.Listing
	if err := qb.Scopes(page).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// CountByStatusForVendor counts a vendor's listings per status.
func (r *Repository) CountByStatusForVendor(ctx context.Context, vendorID uuid.UUID) (map[enums.ListingStatus]int64, error) {
	var rows []struct {
		Status enums.ListingStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("status, COUNT(*) AS total").
		Where("vendor_id = ?", vendorID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[enums.ListingStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// CountByCategory counts every listing per category.
func (r *Repository) CountByCategory(ctx context.Context) (map[enums.ListingCategory]int64, error) {
	var rows []struct {
		Category enums.ListingCategory
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[enums.ListingCategory]int64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Total
	}
	return out, nil
}
