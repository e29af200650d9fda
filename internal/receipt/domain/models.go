// Package domain contains core types for issued receipts.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payment types accepted at issuance.
const (
	PaymentTypeDonation   = "Donation"
	PaymentTypeMembership = "Membership Fee"
	PaymentTypePurchase   = "Purchase"
)

// Preset template names a receipt may reference.
const (
	TemplateStandard   = "Standard Receipt"
	TemplateMembership = "Membership Receipt"
	TemplateEvent      = "Event Receipt"
)

// PaymentTypes lists the closed set of payment types in display order.
func PaymentTypes() []string {
	return []string{PaymentTypeDonation, PaymentTypeMembership, PaymentTypePurchase}
}

// TemplateNames lists the closed set of receipt template names.
func TemplateNames() []string {
	return []string{TemplateStandard, TemplateMembership, TemplateEvent}
}

func ValidPaymentType(value string) bool {
	switch value {
	case PaymentTypeDonation, PaymentTypeMembership, PaymentTypePurchase:
		return true
	default:
		return false
	}
}

func ValidTemplateName(value string) bool {
	switch value {
	case TemplateStandard, TemplateMembership, TemplateEvent:
		return true
	default:
		return false
	}
}

// Receipt is an issued receipt. Receipts are append-only: once stored they are
// never updated or deleted.
type Receipt struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	IssueDate   time.Time `json:"issue_date" gorm:"column:issue_date;not null;index"`
	DonorName   string    `json:"donor_name" gorm:"type:text;not null"`
	ContactInfo string    `json:"contact_info" gorm:"type:text;not null"`
	AmountCents int64     `json:"amount_cents" gorm:"not null"`
	PaymentType string    `json:"payment_type" gorm:"type:text;not null"`
	Template    string    `json:"template" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	IssuedBy    string    `json:"issued_by" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
}

// TableName sets the database table name.
func (Receipt) TableName() string { return "receipts" }

// ReceiptSequence is the per-year issuance counter owned by the store. The
// counter is persisted alongside the receipts so identifier uniqueness does
// not depend on row counts.
type ReceiptSequence struct {
	Year int   `gorm:"primaryKey;autoIncrement:false"`
	Next int64 `gorm:"not null"`
}

// TableName sets the database table name.
func (ReceiptSequence) TableName() string { return "receipt_sequences" }

// FormatID renders the canonical receipt identifier for a year and sequence.
func FormatID(year int, seq int64) string {
	return fmt.Sprintf("RCP-%d-%03d", year, seq)
}

// ParseAmountCents parses a decimal currency amount into centavos. Both parts
// must be bare digit runs, at most two fraction digits; anything else is
// rejected rather than rounded.
func ParseAmountCents(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(value, "-")
	if negative {
		return 0, fmt.Errorf("negative amount %q", raw)
	}

	whole := value
	frac := ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole, frac = value[:i], value[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fraction digits", raw)
	}
	// strconv.ParseInt accepts sign characters, which are not digits
	if !digitsOnly(whole) || (frac != "" && !digitsOnly(frac)) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	return units*100 + cents, nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AmountValue converts centavos back to a decimal value for responses.
func AmountValue(cents int64) float64 {
	return float64(cents) / 100
}
