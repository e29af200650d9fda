package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() receiptdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, receipt *receiptdomain.Receipt) error {
	return db.WithContext(ctx).Create(receipt).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter receiptdomain.Filter) ([]receiptdomain.Receipt, error) {
	q := db.WithContext(ctx).Model(&receiptdomain.Receipt{})

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"LOWER(donor_name) LIKE ? OR LOWER(id) LIKE ? OR LOWER(description) LIKE ? OR LOWER(issued_by) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.PaymentType != "" {
		q = q.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.Template != "" {
		q = q.Where("template = ?", filter.Template)
	}
	if filter.DateFrom != nil {
		q = q.Where("issue_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		// inclusive upper bound on the calendar day
		q = q.Where("issue_date < ?", filter.DateTo.Add(24*time.Hour))
	}

	var receipts []receiptdomain.Receipt
	if err := q.Order("created_at ASC, id ASC").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*receiptdomain.Receipt, error) {
	var receipt receiptdomain.Receipt
	err := db.WithContext(ctx).
		Where("LOWER(id) = ?", strings.ToLower(strings.TrimSpace(id))).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// NextSequence claims the next issuance number for a year. The counter row is
// created on first use and advanced in the same transaction as the read so
// concurrent issuers never observe the same value.
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB, year int) (int64, error) {
	var next int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq receiptdomain.ReceiptSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("year = ?", year).
			First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = receiptdomain.ReceiptSequence{Year: year, Next: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		next = seq.Next
		return tx.Model(&receiptdomain.ReceiptSequence{}).
			Where("year = ?", year).
			Update("next", seq.Next+1).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
