package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// Voucher is a discount code, either platform-wide (VendorID nil) or scoped
// to a single vendor. Its Active/Inactive/Expired label is derived at read
// time and never stored.
type Voucher struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Code              string             `gorm:"column:code;not null;uniqueIndex:vouchers_code_key"`
	Title             string             `gorm:"column:title;not null"`
	Description       *string            `gorm:"column:description"`
	DiscountType      enums.DiscountType `gorm:"column:discount_type;type:discount_type;not null"`
	DiscountValue     decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2);not null"`
	MinOrderAmount    decimal.Decimal    `gorm:"column:min_order_amount;type:numeric(12,2);not null;default:0"`
	MaxDiscount       *decimal.Decimal   `gorm:"column:max_discount;type:numeric(12,2)"`
	VendorID          *uuid.UUID         `gorm:"column:vendor_id;type:uuid;index"`
	IsActive          bool               `gorm:"column:is_active;not null"`
	IsPublic          bool               `gorm:"column:is_public;not null"`
	ValidFrom         time.Time          `gorm:"column:valid_from;not null"`
	ValidUntil        time.Time          `gorm:"column:valid_until;not null"`
	CurrentUsageCount int64              `gorm:"column:current_usage_count;not null;default:0"`
	TotalUsageLimit   int64              `gorm:"column:total_usage_limit;not null;default:0"`
	PerUserLimit      int                `gorm:"column:per_user_limit;not null"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Voucher) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
