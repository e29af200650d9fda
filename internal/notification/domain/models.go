// Package domain contains types for in-app activity notifications.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Notification severities.
const (
	TypeSuccess = "success"
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
)

func ValidType(value string) bool {
	switch value {
	case TypeSuccess, TypeInfo, TypeWarning, TypeError:
		return true
	default:
		return false
	}
}

// Notification is a recorded activity entry shown in the notification feed.
type Notification struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Type      string       `json:"type" gorm:"type:text;not null"`
	Message   string       `json:"message" gorm:"type:text;not null"`
	Read      bool         `json:"read" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }

// RecordRequest creates a notification entry.
type RecordRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Response is the notification representation returned to callers.
type Response struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Service records and reads notifications.
type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Repository persists notifications.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, n *Notification) error
	List(ctx context.Context, db *gorm.DB) ([]Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	MarkAllRead(ctx context.Context, db *gorm.DB) error
}
