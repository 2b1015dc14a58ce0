package preferences

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
)

// Repository handles preference persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to preference operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, pref *models.Preference) error {
	if pref == nil {
		return fmt.Errorf("preference is required")
	}
	return r.db.WithContext(ctx).Create(pref).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Preference, error) {
	var pref models.Preference
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *Repository) Update(ctx context.Context, pref *models.Preference) error {
	if pref == nil {
		return fmt.Errorf("preference is required")
	}
	return r.db.WithContext(ctx).Save(pref).Error
}

// Delete removes a preference. It reports gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Preference{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns preferences by sort order, then name. visibleOnly hides the
// rows customers must not see.
func (r *Repository) List(ctx context.Context, visibleOnly bool) ([]models.Preference, error) {
	var prefs []models.Preference
	q := r.db.WithContext(ctx).Order("sort_order ASC").Order("name ASC")
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	if err := q.Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
