package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	authrepository "github.com/parishlabs/tdrms/internal/auth/repository"
	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	userdomain "github.com/parishlabs/tdrms/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type notificationRecorder struct {
	recorded []notificationdomain.RecordRequest
}

func (n *notificationRecorder) Record(ctx context.Context, req notificationdomain.RecordRequest) (*notificationdomain.Response, error) {
	n.recorded = append(n.recorded, req)
	return &notificationdomain.Response{Type: req.Type, Message: req.Message}, nil
}

func (n *notificationRecorder) List(ctx context.Context) ([]notificationdomain.Response, error) {
	return nil, nil
}

func (n *notificationRecorder) MarkRead(ctx context.Context, id string) error { return nil }

func (n *notificationRecorder) MarkAllRead(ctx context.Context) error { return nil }

func setupUserService(t *testing.T) (userdomain.Service, *authdomain.User, *notificationRecorder) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&authdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	viewer := &authdomain.User{
		ID:           node.Generate(),
		Username:     "viewer",
		DisplayName:  "John Doe",
		PasswordHash: "unused",
		Role:         authdomain.RoleViewer,
		CreatedAt:    clk.Now(),
		UpdatedAt:    clk.Now(),
	}
	require.NoError(t, db.Create(viewer).Error)

	recorder := &notificationRecorder{}
	svc := New(Params{
		Log:           zap.NewNop(),
		Clock:         clk,
		Repo:          authrepository.ProvideUserRepository(db),
		Notifications: recorder,
	})

	return svc, viewer, recorder
}

func TestListOmitsPasswordHashes(t *testing.T) {
	svc, viewer, _ := setupUserService(t)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, viewer.Username, users[0].Username)
	assert.Equal(t, authdomain.RoleViewer, users[0].Role)
}

func TestUpdateRole(t *testing.T) {
	svc, viewer, recorder := setupUserService(t)
	ctx := context.Background()

	updated, err := svc.UpdateRole(ctx, userdomain.UpdateRoleRequest{
		UserID: viewer.ID.String(),
		Role:   " Encoder ",
	})
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleEncoder, updated.Role)

	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, notificationdomain.TypeInfo, recorder.recorded[0].Type)
	assert.Contains(t, recorder.recorded[0].Message, "viewer")
}

func TestUpdateRoleValidation(t *testing.T) {
	svc, viewer, recorder := setupUserService(t)
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, userdomain.UpdateRoleRequest{UserID: viewer.ID.String(), Role: "superuser"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidRole)

	_, err = svc.UpdateRole(ctx, userdomain.UpdateRoleRequest{UserID: "12345", Role: "admin"})
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)

	// unchanged role records no notification
	_, err = svc.UpdateRole(ctx, userdomain.UpdateRoleRequest{UserID: viewer.ID.String(), Role: "viewer"})
	require.NoError(t, err)
	assert.Empty(t, recorder.recorded)
}
