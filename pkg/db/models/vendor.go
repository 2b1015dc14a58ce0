package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// Vendor is the business profile owned by a vendor-role user.
type Vendor struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	BusinessName string                `gorm:"column:business_name;not null"`
	OwnerName    string                `gorm:"column:owner_name;not null"`
	Email        string                `gorm:"column:email;not null"`
	Phone        *string               `gorm:"column:phone"`
	City         string                `gorm:"column:city;not null"`
	Category     enums.ListingCategory `gorm:"column:category;type:listing_category;not null"`
	Status       enums.VendorStatus    `gorm:"column:status;type:vendor_status;not null;default:'pending'"`
	IsVerified   bool                  `gorm:"column:is_verified;not null;default:false"`
	BookingCount int                   `gorm:"column:booking_count;not null;default:0"`
	Revenue      decimal.Decimal       `gorm:"column:revenue;type:numeric(14,2);not null;default:0"`
	Rating       float64               `gorm:"column:rating;not null;default:0"`
	Description  *string               `gorm:"column:description"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Vendor) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
