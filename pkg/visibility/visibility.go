package visibility

import (
	"strings"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
)

// ListingVisibilityInput drives the shared visibility checks for customer-facing queries.
type ListingVisibilityInput struct {
	Vendor        *models.Vendor
	Listing       *models.Listing
	RequestedCity string
}

// EnsureListingVisible enforces canonical rules so unpublished listings and
// gated vendors never leak through public browse. Hidden records report
// NOT_FOUND rather than FORBIDDEN.
func EnsureListingVisible(input ListingVisibilityInput) error {
	if input.Listing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}
	if !input.Listing.Status.IsPublic() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}
	if err := EnsureVendorVisible(input.Vendor); err != nil {
		return err
	}
	if input.Vendor.ID != input.Listing.VendorID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
	}

	if strings.TrimSpace(input.RequestedCity) != "" {
		if normalizeCity(input.Listing.City) != normalizeCity(input.RequestedCity) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "listing not available in the requested city")
		}
	}
	return nil
}

// EnsureVendorVisible reports NOT_FOUND unless the vendor is approved.
func EnsureVendorVisible(vendor *models.Vendor) error {
	if vendor == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	if vendor.Status != enums.VendorStatusApproved {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not available")
	}
	return nil
}

func normalizeCity(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
