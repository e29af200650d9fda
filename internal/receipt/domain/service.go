package domain

import (
	"context"
	"time"
)

// Service issues and reads receipts.
type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
}

// IssueRequest is the issuance submission. Amount arrives as a decimal string
// so the caller's formatting is validated, not silently rounded.
type IssueRequest struct {
	DonorName   string   `json:"donor_name"`
	ContactInfo string   `json:"contact_info"`
	Amount      string   `json:"amount"`
	PaymentType string   `json:"payment_type"`
	Template    string   `json:"template"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IssuedBy    string   `json:"-"`
	IssueDate   string   `json:"issue_date"`
}

// ListRequest filters the receipt listing. Zero values mean no filter.
type ListRequest struct {
	Search      string
	PaymentType string
	Template    string
	DateFrom    string
	DateTo      string
}

// Response is the receipt representation returned to callers.
type Response struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	DonorName   string   `json:"donor_name"`
	ContactInfo string   `json:"contact_info"`
	Amount      float64  `json:"amount"`
	PaymentType string   `json:"payment_type"`
	Template    string   `json:"template"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IssuedBy    string   `json:"issued_by"`
}

// ToResponse converts a stored receipt to its API representation.
func ToResponse(r *Receipt) *Response {
	if r == nil {
		return nil
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Response{
		ID:          r.ID,
		Date:        r.IssueDate.Format(time.DateOnly),
		DonorName:   r.DonorName,
		ContactInfo: r.ContactInfo,
		Amount:      AmountValue(r.AmountCents),
		PaymentType: r.PaymentType,
		Template:    r.Template,
		Description: r.Description,
		Tags:        tags,
		IssuedBy:    r.IssuedBy,
	}
}
