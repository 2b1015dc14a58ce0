package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-backend/pkg/db/dbtest"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
)

func seedVendor(t *testing.T, repo *Repository, name string, status enums.VendorStatus) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		UserID:       uuid.New(),
		BusinessName: name,
		OwnerName:    "Owner",
		Email:        "owner@example.com",
		City:         "Karachi",
		Category:     enums.ListingCategoryVenue,
		Status:       status,
		Revenue:      decimal.NewFromInt(10),
	}
	require.NoError(t, repo.Create(context.Background(), vendor))
	return vendor
}

func TestRepositoryLookups(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	grand := seedVendor(t, repo, "Grand", enums.VendorStatusApproved)
	seedVendor(t, repo, "Farm", enums.VendorStatusPending)
	seedVendor(t, repo, "Lens", enums.VendorStatusApproved)

	byUser, err := repo.FindByUserID(ctx, grand.UserID)
	require.NoError(t, err)
	assert.Equal(t, grand.ID, byUser.ID)

	names, err := repo.BusinessNames(ctx, []uuid.UUID{grand.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{grand.ID: "Grand"}, names)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[enums.VendorStatusApproved])
	assert.EqualValues(t, 1, counts[enums.VendorStatusPending])

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryListingCounts(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	grand := seedVendor(t, repo, "Grand", enums.VendorStatusApproved)
	for i := 0; i < 2; i++ {
		require.NoError(t, conn.Create(&models.Listing{
			VendorID:    grand.ID,
			Category:    enums.ListingCategoryVenue,
			Title:       "Hall",
			City:        "Karachi",
			BasePrice:   decimal.NewFromInt(100),
			PricingUnit: enums.PricingUnitPerDay,
		}).Error)
	}

	counts, err := repo.ListingCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[grand.ID])
}

func TestRepositoryDefaultsPendingStatus(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	vendor := seedVendor(t, repo, "Fresh", "")

	found, err := repo.FindByID(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusPending, found.Status)
}
