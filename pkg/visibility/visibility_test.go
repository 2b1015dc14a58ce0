package visibility

import (
	"testing"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/errors"
)

func baseFixture() (*models.Vendor, *models.Listing) {
	vendor := &models.Vendor{
		ID:     uuid.New(),
		Status: enums.VendorStatusApproved,
	}
	listing := &models.Listing{
		ID:       uuid.New(),
		VendorID: vendor.ID,
		Category: enums.ListingCategoryVenue,
		City:     "Lahore",
		Status:   enums.ListingStatusPublished,
	}
	return vendor, listing
}

func expectNotFound(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected not found error")
	}
	if errors.As(err).Code() != errors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", errors.As(err).Code())
	}
}

func TestEnsureListingVisible(t *testing.T) {
	t.Run("published listing of approved vendor", func(t *testing.T) {
		vendor, listing := baseFixture()
		if err := EnsureListingVisible(ListingVisibilityInput{Vendor: vendor, Listing: listing, RequestedCity: " lahore "}); err != nil {
			t.Fatalf("expected visible, got %v", err)
		}
	})
	t.Run("listing missing", func(t *testing.T) {
		vendor, _ := baseFixture()
		expectNotFound(t, EnsureListingVisible(ListingVisibilityInput{Vendor: vendor}))
	})
	t.Run("draft listing", func(t *testing.T) {
		vendor, listing := baseFixture()
		listing.Status = enums.ListingStatusDraft
		expectNotFound(t, EnsureListingVisible(ListingVisibilityInput{Vendor: vendor, Listing: listing}))
	})
	t.Run("suspended vendor", func(t *testing.T) {
		vendor, listing := baseFixture()
		vendor.Status = enums.VendorStatusSuspended
		expectNotFound(t, EnsureListingVisible(ListingVisibilityInput{Vendor: vendor, Listing: listing}))
	})
	t.Run("vendor mismatch", func(t *testing.T) {
		vendor, listing := baseFixture()
		listing.VendorID = uuid.New()
		expectNotFound(t, EnsureListingVisible(ListingVisibilityInput{Vendor: vendor, Listing: listing}))
	})
	t.Run("other city", func(t *testing.T) {
		vendor, listing := baseFixture()
		expectNotFound(t, EnsureListingVisible(ListingVisibilityInput{Vendor: vendor, Listing: listing, RequestedCity: "Karachi"}))
	})
}

func TestEnsureVendorVisible(t *testing.T) {
	expectNotFound(t, EnsureVendorVisible(nil))
	vendor, _ := baseFixture()
	vendor.Status = enums.VendorStatusPending
	expectNotFound(t, EnsureVendorVisible(vendor))
}
