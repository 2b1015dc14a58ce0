package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/db/dbtest"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
)

func testOptions(now time.Time) Options {
	return Options{
		AdminEmail:    "admin@venuehub.pk",
		AdminPassword: "admin12345",
		UserPassword:  "demo12345",
		Passwords: config.PasswordConfig{
			ArgonMemoryKB:    1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
			MinLength:        8,
		},
		Now: now,
	}
}

func TestSeederRunIsIdempotent(t *testing.T) {
	conn := dbtest.Open(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	seeder, err := New(conn, nil, testOptions(now))
	require.NoError(t, err)

	summary, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Users:       1 + len(customers) + len(vendorsData),
		Vendors:     len(vendorsData),
		Listings:    len(listingsData),
		Vouchers:    len(vouchersData),
		Preferences: len(preferencesData),
	}, summary)

	again, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, again)

	var admin models.User
	require.NoError(t, conn.Where("email = ?", "admin@venuehub.pk").First(&admin).Error)
	assert.Equal(t, enums.UserRoleAdmin, admin.Role)
	assert.True(t, admin.IsEmailVerified())
}

func TestSeededVouchersCoverEveryDerivedStatus(t *testing.T) {
	conn := dbtest.Open(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	seeder, err := New(conn, nil, testOptions(now))
	require.NoError(t, err)
	_, err = seeder.Run(context.Background())
	require.NoError(t, err)

	var vouchers []models.Voucher
	require.NoError(t, conn.Order("code").Find(&vouchers).Error)

	statuses := map[string]lifecycle.Status{}
	for _, v := range vouchers {
		statuses[v.Code] = lifecycle.Derive(v.IsActive, v.ValidUntil, now)
	}
	assert.Equal(t, lifecycle.StatusActive, statuses["SAVE20"])
	assert.Equal(t, lifecycle.StatusActive, statuses["FIXED10"])
	assert.Equal(t, lifecycle.StatusInactive, statuses["EXPIRED15"])

	var royal models.Voucher
	require.NoError(t, conn.Where("code = ?", "ROYAL5K").First(&royal).Error)
	require.NotNil(t, royal.VendorID)
}

func TestSeededListingDetailsDecode(t *testing.T) {
	conn := dbtest.Open(t)
	seeder, err := New(conn, nil, testOptions(time.Now()))
	require.NoError(t, err)
	_, err = seeder.Run(context.Background())
	require.NoError(t, err)

	var listing models.Listing
	require.NoError(t, conn.Where("title = ?", "Green Acres Poolside Farmhouse").First(&listing).Error)
	assert.Equal(t, enums.ListingCategoryFarmhouse, listing.Category)

	var details listings.FarmhouseDetails
	require.NoError(t, listing.Details.Decode(&details))
	assert.True(t, details.HasPool)
	assert.Equal(t, "14:00", details.CheckIn)
}

func TestNewRejectsWeakPasswords(t *testing.T) {
	opts := testOptions(time.Now())
	opts.AdminPassword = "short"
	_, err := New(dbtest.Open(t), nil, opts)
	assert.Error(t, err)
}
