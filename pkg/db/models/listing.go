package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/types"
)

// Listing is a vendor-offered service: a venue, a farmhouse, a catering
// package or a photography package. Category-specific attributes live in
// Details.
type Listing struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	VendorID    uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null;index"`
	Category    enums.ListingCategory `gorm:"column:category;type:listing_category;not null"`
	Title       string                `gorm:"column:title;not null"`
	Description *string               `gorm:"column:description"`
	City        string                `gorm:"column:city;not null"`
	Address     *string               `gorm:"column:address"`
	MinGuests   int                   `gorm:"column:min_guests;not null;default:0"`
	MaxGuests   int                   `gorm:"column:max_guests;not null;default:0"`
	BasePrice   decimal.Decimal       `gorm:"column:base_price;type:numeric(12,2);not null"`
	PricingUnit enums.PricingUnit     `gorm:"column:pricing_unit;type:pricing_unit;not null"`
	Amenities   types.StringList      `gorm:"column:amenities;type:jsonb;not null;default:'[]'"`
	Details     types.JSONObject      `gorm:"column:details;type:jsonb;not null;default:'{}'"`
	Status      enums.ListingStatus   `gorm:"column:status;type:listing_status;not null;default:'draft'"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Listing) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
