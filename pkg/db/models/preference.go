package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// Preference is an admin-curated option customers pick during onboarding.
type Preference struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name        string               `gorm:"column:name;not null"`
	Type        enums.PreferenceType `gorm:"column:type;type:preference_type;not null"`
	Description *string              `gorm:"column:description"`
	IsVisible   bool                 `gorm:"column:is_visible;not null"`
	SortOrder   int                  `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Preference) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
