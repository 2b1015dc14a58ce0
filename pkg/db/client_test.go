package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type bookingNote struct {
	ID   int
	Body string
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&bookingNote{}))
	return conn
}

func countNotes(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(&bookingNote{}).Count(&n).Error)
	return n
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	conn := openMemory(t)
	client := NewFromConn(conn)
	ctx := context.Background()

	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&bookingNote{Body: "committed"}).Error
	}))
	assert.EqualValues(t, 1, countNotes(t, conn))

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&bookingNote{Body: "rolled back"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.EqualValues(t, 1, countNotes(t, conn))

	assert.Panics(t, func() {
		_ = client.WithTx(ctx, func(tx *gorm.DB) error {
			tx.Create(&bookingNote{Body: "panicked"})
			panic("handler bug")
		})
	})
	assert.EqualValues(t, 1, countNotes(t, conn))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	assert.Error(t, err)

	_, err = New(context.Background(), config.DBConfig{DSN: "x", Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewOpensSQLite(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: config.DriverSQLite}, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.AutoMigrate(&bookingNote{}))
	assert.NoError(t, client.Ping(context.Background()))
}

func TestQueryLoggerReportsFailuresAndSlowQueries(t *testing.T) {
	var buf bytes.Buffer
	q := newQueryLogger(logger.New(logger.Options{ServiceName: "test", Output: &buf}), 50*time.Millisecond)
	sql := func() (string, int64) { return "SELECT * FROM listings", 3 }
	ctx := context.Background()

	q.Trace(ctx, time.Now(), sql, nil)
	q.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	q.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "db.query_slow")
	assert.Contains(t, buf.String(), "SELECT * FROM listings")

	buf.Reset()
	q.Trace(ctx, time.Now(), sql, errors.New("relation missing"))
	assert.Contains(t, buf.String(), "db.query_failed")
	assert.Contains(t, buf.String(), "relation missing")
}

func TestIsUniqueViolationDetectsSQLiteConstraint(t *testing.T) {
	type voucherCode struct {
		ID   int
		Code string `gorm:"uniqueIndex"`
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&voucherCode{}))
	require.NoError(t, conn.Create(&voucherCode{Code: "SAVE20"}).Error)

	err = conn.Create(&voucherCode{Code: "SAVE20"}).Error
	assert.True(t, IsUniqueViolation(err, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
}
