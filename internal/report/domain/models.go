// Package domain contains types for aggregated donation reports.
package domain

import (
	"context"
	"errors"
)

// ErrEmptyResultSet indicates no receipt matched the report filters. An empty
// report is a user-facing condition, never a silent zero-valued summary.
var ErrEmptyResultSet = errors.New("no receipts match the report criteria")

// GenerateRequest filters the receipts folded into a report. Zero values mean
// no filter.
type GenerateRequest struct {
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	PaymentType string `json:"payment_type"`
}

// MonthlyEntry aggregates one calendar month, labeled "January 2006".
type MonthlyEntry struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// DonorTotal aggregates one donor across the filtered receipts.
type DonorTotal struct {
	DonorName string  `json:"donor_name"`
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
}

// Report is the aggregated summary of the filtered receipts.
type Report struct {
	GeneratedAt          string             `json:"generated_at"`
	DateFrom             string             `json:"date_from,omitempty"`
	DateTo               string             `json:"date_to,omitempty"`
	PaymentType          string             `json:"payment_type,omitempty"`
	TotalReceipts        int                `json:"total_receipts"`
	TotalAmount          float64            `json:"total_amount"`
	PaymentTypeBreakdown map[string]float64 `json:"payment_type_breakdown"`
	TemplateBreakdown    map[string]int     `json:"template_breakdown"`
	MonthlyBreakdown     []MonthlyEntry     `json:"monthly_breakdown"`
	TopDonors            []DonorTotal       `json:"top_donors"`
}

// Service folds stored receipts into reports.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Report, error)
}
