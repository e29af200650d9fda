package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Filter narrows listing queries. Zero values are ignored.
type Filter struct {
	Search      string
	PaymentType string
	Template    string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Repository persists receipts and owns the issuance counter.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	List(ctx context.Context, db *gorm.DB, filter Filter) ([]Receipt, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Receipt, error)
	NextSequence(ctx context.Context, db *gorm.DB, year int) (int64, error)
}
