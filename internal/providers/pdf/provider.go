// Package pdf renders issued receipts as printable documents.
package pdf

import (
	"context"
	"io"

	"github.com/gosimple/slug"
)

// ReceiptDocument is everything a rendered receipt needs: the stored receipt
// fields plus the layout of the template it was issued under.
type ReceiptDocument struct {
	ReceiptID      string
	Date           string
	DonorName      string
	ContactInfo    string
	Amount         string
	PaymentType    string
	Description    string
	IssuedBy       string
	Organization   string
	Address        string
	Purpose        string
	Signatories    []Signatory
	PrimaryColor   string
	SecondaryColor string
	Payload        string
}

// Signatory is a named officer printed at the foot of the document.
type Signatory struct {
	Name  string
	Title string
}

// Provider renders receipt documents.
type Provider interface {
	GenerateReceipt(ctx context.Context, doc ReceiptDocument) (io.Reader, error)
}

// FileName derives a safe download name for a rendered receipt.
func FileName(receiptID string) string {
	return slug.Make(receiptID) + ".pdf"
}
