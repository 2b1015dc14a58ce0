package vendors

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const (
	VerificationVerified   = "verified"
	VerificationUnverified = "unverified"
)

// VendorDTO is the vendor profile as returned by the API.
type VendorDTO struct {
	ID           uuid.UUID             `json:"id"`
	UserID       uuid.UUID             `json:"user_id"`
	BusinessName string                `json:"business_name"`
	OwnerName    string                `json:"owner_name"`
	Email        string                `json:"email"`
	Phone        *string               `json:"phone,omitempty"`
	City         string                `json:"city"`
	Category     enums.ListingCategory `json:"category"`
	Status       enums.VendorStatus    `json:"status"`
	IsVerified   bool                  `json:"is_verified"`
	Verification string                `json:"verification"`
	BookingCount int                   `json:"booking_count"`
	Revenue      decimal.Decimal       `json:"revenue"`
	Rating       float64               `json:"rating"`
	Description  *string               `json:"description,omitempty"`
	ListingCount int64                 `json:"listing_count"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// FromModel maps a vendor row to its DTO.
func FromModel(v *models.Vendor, listingCount int64) *VendorDTO {
	if v == nil {
		return nil
	}
	verification := VerificationUnverified
	if v.IsVerified {
		verification = VerificationVerified
	}
	return &VendorDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		BusinessName: v.BusinessName,
		OwnerName:    v.OwnerName,
		Email:        v.Email,
		Phone:        v.Phone,
		City:         v.City,
		Category:     v.Category,
		Status:       v.Status,
		IsVerified:   v.IsVerified,
		Verification: verification,
		BookingCount: v.BookingCount,
		Revenue:      v.Revenue,
		Rating:       v.Rating,
		Description:  v.Description,
		ListingCount: listingCount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// UpdateProfileInput captures the fields a vendor may edit on their profile.
type UpdateProfileInput struct {
	BusinessName *string
	OwnerName    *string
	Phone        *string
	City         *string
	Description  *string
}

// StatusAction is an admin moderation action on a vendor.
type StatusAction string

const (
	ActionApprove   StatusAction = "approve"
	ActionSuspend   StatusAction = "suspend"
	ActionReject    StatusAction = "reject"
	ActionReinstate StatusAction = "reinstate"
)

// ParseStatusAction accepts any casing of an action name.
func ParseStatusAction(value string) (StatusAction, bool) {
	action := StatusAction(strings.ToLower(strings.TrimSpace(value)))
	switch action {
	case ActionApprove, ActionSuspend, ActionReject, ActionReinstate:
		return action, true
	}
	return "", false
}

// Target resolves the status the action moves a vendor to from current.
// Reinstating a suspended vendor approves it again; reinstating a rejected
// vendor sends it back to review.
func (a StatusAction) Target(current enums.VendorStatus) enums.VendorStatus {
	switch a {
	case ActionApprove:
		return enums.VendorStatusApproved
	case ActionSuspend:
		return enums.VendorStatusSuspended
	case ActionReject:
		return enums.VendorStatusRejected
	case ActionReinstate:
		if current == enums.VendorStatusRejected {
			return enums.VendorStatusPending
		}
		return enums.VendorStatusApproved
	}
	return current
}

// Stats summarises a vendor list.
type Stats struct {
	Total         int             `json:"total"`
	Approved      int             `json:"approved"`
	Pending       int             `json:"pending"`
	Suspended     int             `json:"suspended"`
	Rejected      int             `json:"rejected"`
	Verified      int             `json:"verified"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalBookings int             `json:"total_bookings"`
}

// ListResult is one evaluated vendor list screen.
type ListResult struct {
	Items          []VendorDTO               `json:"items"`
	Stats          Stats                     `json:"stats"`
	AppliedFilters []filtering.AppliedFilter `json:"applied_filters,omitempty"`
	Unfiltered     int                       `json:"unfiltered_total"`
}

// DashboardDTO is the vendor's own overview.
type DashboardDTO struct {
	VendorID         uuid.UUID          `json:"vendor_id"`
	Status           enums.VendorStatus `json:"status"`
	TotalListings    int64              `json:"total_listings"`
	ListingsByStatus map[string]int64   `json:"listings_by_status"`
	BookingCount     int                `json:"booking_count"`
	Revenue          decimal.Decimal    `json:"revenue"`
	Rating           float64            `json:"rating"`
	ActiveVouchers   int64              `json:"active_vouchers"`
}
