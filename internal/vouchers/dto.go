package vouchers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
	"github.com/venuehub/venuehub-backend/pkg/usage"
)

const (
	ScopePlatform = "platform"
	ScopeVendor   = "vendor"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// VoucherDTO is a voucher as shown on list screens, with the fields derived
// at read time.
type VoucherDTO struct {
	ID                uuid.UUID          `json:"id"`
	Code              string             `json:"code"`
	Title             string             `json:"title"`
	Description       *string            `json:"description,omitempty"`
	DiscountType      enums.DiscountType `json:"discount_type"`
	DiscountValue     decimal.Decimal    `json:"discount_value"`
	MinOrderAmount    decimal.Decimal    `json:"min_order_amount"`
	MaxDiscount       *decimal.Decimal   `json:"max_discount,omitempty"`
	VendorID          *uuid.UUID         `json:"vendor_id,omitempty"`
	VendorName        string             `json:"vendor_name,omitempty"`
	Scope             string             `json:"scope"`
	Visibility        string             `json:"visibility"`
	IsActive          bool               `json:"is_active"`
	IsPublic          bool               `json:"is_public"`
	ValidFrom         time.Time          `json:"valid_from"`
	ValidUntil        time.Time          `json:"valid_until"`
	CurrentUsageCount int64              `json:"current_usage_count"`
	TotalUsageLimit   int64              `json:"total_usage_limit"`
	PerUserLimit      int                `json:"per_user_limit"`
	Status            lifecycle.Status   `json:"status"`
	Progress          int                `json:"progress"`
	RemainingUses     int64              `json:"remaining_uses"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// FromModel maps a stored voucher to its DTO, deriving status against now.
func FromModel(v *models.Voucher, vendorName string, now time.Time) *VoucherDTO {
	if v == nil {
		return nil
	}
	scope := ScopePlatform
	if v.VendorID != nil {
		scope = ScopeVendor
	}
	visibility := VisibilityPrivate
	if v.IsPublic {
		visibility = VisibilityPublic
	}
	return &VoucherDTO{
		ID:                v.ID,
		Code:              v.Code,
		Title:             v.Title,
		Description:       v.Description,
		DiscountType:      v.DiscountType,
		DiscountValue:     v.DiscountValue,
		MinOrderAmount:    v.MinOrderAmount,
		MaxDiscount:       v.MaxDiscount,
		VendorID:          v.VendorID,
		VendorName:        vendorName,
		Scope:             scope,
		Visibility:        visibility,
		IsActive:          v.IsActive,
		IsPublic:          v.IsPublic,
		ValidFrom:         v.ValidFrom,
		ValidUntil:        v.ValidUntil,
		CurrentUsageCount: v.CurrentUsageCount,
		TotalUsageLimit:   v.TotalUsageLimit,
		PerUserLimit:      v.PerUserLimit,
		Status:            lifecycle.Derive(v.IsActive, v.ValidUntil, now),
		Progress:          usage.Progress(v.CurrentUsageCount, v.TotalUsageLimit),
		RemainingUses:     usage.Remaining(v.CurrentUsageCount, v.TotalUsageLimit),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// CreateVoucherInput captures the fields accepted when creating a voucher.
type CreateVoucherInput struct {
	Code            string
	Title           string
	Description     *string
	DiscountType    enums.DiscountType
	DiscountValue   decimal.Decimal
	MinOrderAmount  decimal.Decimal
	MaxDiscount     *decimal.Decimal
	VendorID        *uuid.UUID
	IsActive        bool
	IsPublic        bool
	ValidFrom       time.Time
	ValidUntil      time.Time
	TotalUsageLimit int64
	PerUserLimit    int
}

// UpdateVoucherInput captures the mutable voucher fields; nil means unchanged.
type UpdateVoucherInput struct {
	Title           *string
	Description     *string
	DiscountType    *enums.DiscountType
	DiscountValue   *decimal.Decimal
	MinOrderAmount  *decimal.Decimal
	MaxDiscount     *decimal.Decimal
	IsPublic        *bool
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	TotalUsageLimit *int64
	PerUserLimit    *int
}

// Stats summarises a voucher list.
type Stats struct {
	Total           int   `json:"total"`
	Active          int   `json:"active"`
	Inactive        int   `json:"inactive"`
	Expired         int   `json:"expired"`
	Redemptions     int64 `json:"redemptions"`
	AverageProgress int   `json:"average_progress"`
}

// ListResult is one evaluated list screen.
type ListResult struct {
	Items          []VoucherDTO              `json:"items"`
	Stats          Stats                     `json:"stats"`
	AppliedFilters []filtering.AppliedFilter `json:"applied_filters,omitempty"`
	Unfiltered     int                       `json:"unfiltered_total"`
}
