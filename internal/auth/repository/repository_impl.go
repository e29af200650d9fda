package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func ProvideUserRepository(db *gorm.DB) authdomain.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *authdomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]authdomain.User, error) {
	var users []authdomain.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id snowflake.ID, role authdomain.Role, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&authdomain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"role":       role,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

type sessionRepo struct {
	db *gorm.DB
}

func ProvideSessionRepository(db *gorm.DB) authdomain.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) CreateSession(ctx context.Context, session *authdomain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*authdomain.Session, error) {
	var session authdomain.Session
	err := r.db.WithContext(ctx).
		Where("session_token_hash = ?", tokenHash).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authdomain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) UpdateLastSeen(ctx context.Context, id snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&authdomain.Session{}).
		Where("id = ?", id).
		Update("last_seen_at", at).Error
}

func (r *sessionRepo) RevokeSession(ctx context.Context, id snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&authdomain.Session{}).
		Where("id = ?", id).
		Update("revoked_at", at).Error
}
