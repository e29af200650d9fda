package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/auth/password"
	"github.com/parishlabs/tdrms/internal/auth/repository"
	"github.com/parishlabs/tdrms/internal/clock"
	"github.com/parishlabs/tdrms/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T, clk clock.Clock) authdomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &authdomain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	hash, err := password.Hash("admin123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&authdomain.User{
		ID:           node.Generate(),
		Username:     "admin",
		DisplayName:  "System Administrator",
		PasswordHash: hash,
		Role:         authdomain.RoleAdmin,
		CreatedAt:    clk.Now(),
		UpdatedAt:    clk.Now(),
	}).Error)

	return New(Params{
		Config:      config.Config{SessionTTLHours: 24},
		Log:         zap.NewNop(),
		Clock:       clk,
		GenID:       node,
		Repo:        repository.ProvideUserRepository(db),
		SessionRepo: repository.ProvideSessionRepository(db),
	})
}

func TestLoginIssuesSession(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	svc := setupAuthService(t, clk)
	ctx := context.Background()

	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RawToken)
	assert.Equal(t, "System Administrator", result.User.DisplayName)
	assert.Equal(t, clk.Now().Add(24*time.Hour), result.ExpiresAt)

	user, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleAdmin, user.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	svc := setupAuthService(t, clk)
	ctx := context.Background()

	_, err := svc.Login(ctx, authdomain.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Username: "nobody", Password: "admin123"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Username: "  ", Password: ""})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestAuthenticateExpiry(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	svc := setupAuthService(t, clk)
	ctx := context.Background()

	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	clk.Advance(25 * time.Hour)
	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	svc := setupAuthService(t, clk)
	ctx := context.Background()

	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionRevoked)

	err = svc.Logout(ctx, "unknown-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}
