package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/pagination"
	"github.com/venuehub/venuehub-backend/pkg/types"
)

// ListingDTO is a listing as returned to vendors, admins and customers.
type ListingDTO struct {
	ID          uuid.UUID             `json:"id"`
	VendorID    uuid.UUID             `json:"vendor_id"`
	VendorName  string                `json:"vendor_name,omitempty"`
	Category    enums.ListingCategory `json:"category"`
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	City        string                `json:"city"`
	Address     *string               `json:"address,omitempty"`
	MinGuests   int                   `json:"min_guests"`
	MaxGuests   int                   `json:"max_guests"`
	BasePrice   decimal.Decimal       `json:"base_price"`
	PricingUnit enums.PricingUnit     `json:"pricing_unit"`
	Amenities   types.StringList      `json:"amenities"`
	Details     types.JSONObject      `json:"details"`
	Status      enums.ListingStatus   `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func FromModel(l *models.Listing, vendorName string) *ListingDTO {
	if l == nil {
		return nil
	}
	amenities := l.Amenities
	if amenities == nil {
		amenities = types.StringList{}
	}
	detailsObj := l.Details
	if detailsObj == nil {
		detailsObj = types.JSONObject{}
	}
	return &ListingDTO{
		ID:          l.ID,
		VendorID:    l.VendorID,
		VendorName:  vendorName,
		Category:    l.Category,
		Title:       l.Title,
		Description: l.Description,
		City:        l.City,
		Address:     l.Address,
		MinGuests:   l.MinGuests,
		MaxGuests:   l.MaxGuests,
		BasePrice:   l.BasePrice,
		PricingUnit: l.PricingUnit,
		Amenities:   amenities,
		Details:     detailsObj,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// BaseListingInput holds the fields shared by every listing category.
type BaseListingInput struct {
	Title       string
	Description *string
	City        string
	Address     *string
	MinGuests   int
	MaxGuests   int
	BasePrice   decimal.Decimal
	PricingUnit *enums.PricingUnit
	Amenities   []string
	Publish     bool
}

type CreateVenueInput struct {
	BaseListingInput
	Details VenueDetails
}

type CreateFarmhouseInput struct {
	BaseListingInput
	Details FarmhouseDetails
}

type CreateCateringPackageInput struct {
	BaseListingInput
	Details CateringDetails
}

type CreatePhotographyPackageInput struct {
	BaseListingInput
	Details PhotographyDetails
}

// PublicQuery narrows the customer browse feed.
type PublicQuery struct {
	Category   *enums.ListingCategory
	City       string
	Pagination pagination.Params
}

// Stats summarises an admin listing screen.
type Stats struct {
	Total      int            `json:"total"`
	Published  int            `json:"published"`
	Draft      int            `json:"draft"`
	Archived   int            `json:"archived"`
	ByCategory map[string]int `json:"by_category"`
}

type ListResult struct {
	Items          []ListingDTO              `json:"items"`
	Stats          Stats                     `json:"stats"`
	AppliedFilters []filtering.AppliedFilter `json:"applied_filters,omitempty"`
	Unfiltered     int                       `json:"unfiltered_total"`
}
