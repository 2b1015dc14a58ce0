package vouchers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/db"
	"github.com/venuehub/venuehub-backend/pkg/db/dbtest"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
)

func newRepoVoucher(code string, vendorID *uuid.UUID, created time.Time) *models.Voucher {
	return &models.Voucher{
		Code:            code,
		Title:           code,
		DiscountType:    enums.DiscountTypeFixed,
		DiscountValue:   decimal.NewFromInt(10),
		VendorID:        vendorID,
		IsActive:        true,
		IsPublic:        true,
		ValidFrom:       created,
		ValidUntil:      created.AddDate(0, 1, 0),
		TotalUsageLimit: 10,
		PerUserLimit:    1,
		CreatedAt:       created,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	v := newRepoVoucher("SAVE20", nil, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, v))
	require.NotEqual(t, uuid.Nil, v.ID)

	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", found.Code)
	assert.True(t, found.DiscountValue.Equal(decimal.NewFromInt(10)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDuplicateCode(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newRepoVoucher("SAVE20", nil, now)))
	err := repo.Create(ctx, newRepoVoucher("SAVE20", nil, now))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, CodeConstraint))
}

func TestRepositoryListScopesAndOrders(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	vendorID := uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newRepoVoucher("OLDEST", nil, base)))
	require.NoError(t, repo.Create(ctx, newRepoVoucher("VENDOR", &vendorID, base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newRepoVoucher("NEWEST", nil, base.Add(2*time.Hour))))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "NEWEST", all[0].Code)
	assert.Equal(t, "OLDEST", all[2].Code)

	scoped, err := repo.List(ctx, &vendorID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "VENDOR", scoped[0].Code)

	count, err := repo.CountActiveForVendor(ctx, vendorID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	v := newRepoVoucher("SAVE20", nil, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, v))

	v.IsActive = false
	require.NoError(t, repo.Update(ctx, v))
	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	require.NoError(t, repo.Delete(ctx, v.ID))
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), gorm.ErrRecordNotFound)
}
