package authorization

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthorization(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestViewerPermissions(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "viewer", ObjectReceipt, ActionReceiptView))
	assert.NoError(t, svc.Authorize(ctx, "viewer", ObjectVerification, ActionVerificationVerify))
	assert.NoError(t, svc.Authorize(ctx, "viewer", ObjectReport, ActionReportGenerate))
	assert.NoError(t, svc.Authorize(ctx, "viewer", ObjectTemplate, ActionTemplateView))

	assert.ErrorIs(t, svc.Authorize(ctx, "viewer", ObjectReceipt, ActionReceiptCreate), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "viewer", ObjectUser, ActionUserView), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "viewer", ObjectNotification, ActionNotificationView), ErrForbidden)
}

func TestEncoderInheritsViewer(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "encoder", ObjectReceipt, ActionReceiptView))
	assert.NoError(t, svc.Authorize(ctx, "encoder", ObjectReceipt, ActionReceiptCreate))
	assert.NoError(t, svc.Authorize(ctx, "encoder", ObjectNotification, ActionNotificationView))

	assert.ErrorIs(t, svc.Authorize(ctx, "encoder", ObjectTemplate, ActionTemplateCreate), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "encoder", ObjectUser, ActionUserUpdateRole), ErrForbidden)
}

func TestAdminInheritsEverything(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectReceipt, ActionReceiptView))
	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectReceipt, ActionReceiptCreate))
	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectTemplate, ActionTemplateDelete))
	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectUser, ActionUserUpdateRole))
	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectNotification, ActionNotificationManage))
}

func TestAuthorizeValidation(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "superuser", ObjectReceipt, ActionReceiptView), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, "", ObjectReceipt, ActionReceiptView), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, "admin", "  ", ActionReceiptView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, "admin", ObjectReceipt, ""), ErrInvalidAction)
}
