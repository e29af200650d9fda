// Package domain contains types for receipt authenticity checks.
package domain

import (
	"context"
	"errors"

	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
)

var (
	// ErrMissingIdentifier indicates no receipt identifier was supplied.
	ErrMissingIdentifier = errors.New("missing receipt identifier")
	// ErrReceiptNotFound indicates the identifier matches no stored receipt.
	ErrReceiptNotFound = errors.New("receipt not found")
	// ErrDonorMismatch indicates the supplied donor name disagrees with the record.
	ErrDonorMismatch = errors.New("donor name does not match")
	// ErrInvalidAmount indicates the supplied amount is not a parseable decimal.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountMismatch indicates the supplied amount disagrees with the record.
	ErrAmountMismatch = errors.New("amount does not match")
	// ErrMalformedPayload indicates the scanned payload is not a usable bundle.
	ErrMalformedPayload = errors.New("malformed verification payload")
)

// VerifyRequest checks a receipt against the store. Donor name and amount are
// optional corroborating inputs; when present they must match the record.
type VerifyRequest struct {
	ReceiptID string `json:"receipt_id"`
	DonorName string `json:"donor_name"`
	Amount    string `json:"amount"`
}

// Payload is the bundle embedded in a receipt's QR code.
type Payload struct {
	ReceiptID string  `json:"receiptId"`
	DonorName string  `json:"donorName,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Date      string  `json:"date,omitempty"`
	IssuedBy  string  `json:"issuedBy,omitempty"`
}

// Result is a successful verification. Verified is presentation-only: a
// returned receipt is always a verified one.
type Result struct {
	Verified bool                    `json:"verified"`
	Receipt  *receiptdomain.Response `json:"receipt"`
}

// Service checks receipt authenticity by store lookup.
type Service interface {
	Verify(ctx context.Context, req VerifyRequest) (*Result, error)
	VerifyPayload(ctx context.Context, payload string) (*Result, error)
}

// PayloadFor builds the QR bundle for an issued receipt.
func PayloadFor(r *receiptdomain.Response) Payload {
	return Payload{
		ReceiptID: r.ID,
		DonorName: r.DonorName,
		Amount:    r.Amount,
		Date:      r.Date,
		IssuedBy:  r.IssuedBy,
	}
}
