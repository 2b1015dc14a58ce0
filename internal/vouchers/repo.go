package vouchers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
)

// CodeConstraint is the unique index guarding voucher codes.
const CodeConstraint = "vouchers_code_key"

// Repository handles voucher persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to voucher operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new voucher.
func (r *Repository) Create(ctx context.Context, voucher *models.Voucher) error {
	if voucher == nil {
		return fmt.Errorf("voucher is required")
	}
	return r.db.WithContext(ctx).Create(voucher).Error
}

// FindByID loads a voucher by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

// Update saves the provided voucher.
func (r *Repository) Update(ctx context.Context, voucher *models.Voucher) error {
	if voucher == nil {
		return fmt.Errorf("voucher is required")
	}
	return r.db.WithContext(ctx).Save(voucher).Error
}

// Delete removes a voucher. It reports gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Voucher{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns vouchers newest first. A non-nil vendorID restricts the list
// to that vendor's vouchers.
func (r *Repository) List(ctx context.Context, vendorID *uuid.UUID) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if vendorID != nil {
		q = q.Where("vendor_id = ?", *vendorID)
	}
	if err := q.Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// CountActiveForVendor counts switched-on vouchers scoped to vendorID.
func (r *Repository) CountActiveForVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Count(&count).Error
	return count, err
}
