package vendors

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// Repository handles vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new vendor profile.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}
	return r.db.WithContext(ctx).Create(vendor).Error
}

// FindByID loads a vendor by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByUserID loads the vendor profile owned by userID.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update saves the provided vendor.
func (r *Repository) Update(ctx context.Context, vendor *models.Vendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}
	return r.db.WithContext(ctx).Save(vendor).Error
}

// List returns every vendor, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// BusinessNames resolves vendor ids to business names. Unknown ids are absent
// from the result.
func (r *Repository) BusinessNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID           uuid.UUID
		BusinessName string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Select("id, business_name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.BusinessName
	}
	return out, nil
}

// ListingCounts counts listings per vendor.
func (r *Repository) ListingCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		VendorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select("vendor_id, COUNT(*) AS total").
		Group("vendor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.VendorID] = row.Total
	}
	return out, nil
}

// CountByStatus counts vendors per moderation status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.VendorStatus]int64, error) {
	var rows []struct {
		Status enums.VendorStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[enums.VendorStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
