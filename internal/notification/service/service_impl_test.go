package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	"github.com/parishlabs/tdrms/internal/notification/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupNotificationService(t *testing.T) notificationdomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&notificationdomain.Notification{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestRecordValidatesTypeAndMessage(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, notificationdomain.RecordRequest{Type: "shout", Message: "hello"})
	assert.ErrorIs(t, err, notificationdomain.ErrInvalidType)

	_, err = svc.Record(ctx, notificationdomain.RecordRequest{Type: notificationdomain.TypeInfo, Message: "   "})
	assert.ErrorIs(t, err, notificationdomain.ErrInvalidMessage)

	resp, err := svc.Record(ctx, notificationdomain.RecordRequest{Type: notificationdomain.TypeSuccess, Message: "Receipt RCP-2024-001 issued"})
	require.NoError(t, err)
	assert.False(t, resp.Read)
	assert.NotEmpty(t, resp.ID)
}

func TestListReturnsNewestFirst(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		_, err := svc.Record(ctx, notificationdomain.RecordRequest{Type: notificationdomain.TypeInfo, Message: msg})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Message)
	assert.Equal(t, "first", list[2].Message)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.MarkRead(ctx, "not-a-number"), notificationdomain.ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, "42"), notificationdomain.ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc := setupNotificationService(t)
	ctx := context.Background()

	first, err := svc.Record(ctx, notificationdomain.RecordRequest{Type: notificationdomain.TypeWarning, Message: "one"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, notificationdomain.RecordRequest{Type: notificationdomain.TypeError, Message: "two"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, first.ID))
	require.NoError(t, svc.MarkAllRead(ctx))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read, n.Message)
	}
}
