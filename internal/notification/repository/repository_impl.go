package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() notificationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, n *notificationdomain.Notification) error {
	return db.WithContext(ctx).Create(n).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]notificationdomain.Notification, error) {
	var notifications []notificationdomain.Notification
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *repo) MarkAllRead(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("read = ?", false).
		Update("read", true).Error
}
