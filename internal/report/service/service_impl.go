package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/parishlabs/tdrms/internal/clock"
	"github.com/parishlabs/tdrms/internal/observability/metrics"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	reportdomain "github.com/parishlabs/tdrms/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topDonorLimit = 5

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    receiptdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    receiptdomain.Repository
	metrics *metrics.Metrics
}

func New(p Params) reportdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("report.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Generate folds the filtered receipts into a report in a single pass. The
// filter semantics are the same as the receipt listing.
func (s *Service) Generate(ctx context.Context, req reportdomain.GenerateRequest) (*reportdomain.Report, error) {
	filter := receiptdomain.Filter{
		PaymentType: strings.TrimSpace(req.PaymentType),
	}

	if raw := strings.TrimSpace(req.DateFrom); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, &receiptdomain.ValidationErrors{Errors: []receiptdomain.ValidationError{
				{Field: "date_from", Code: "invalid_date", Message: "date_from must use YYYY-MM-DD"},
			}}
		}
		filter.DateFrom = &from
	}
	if raw := strings.TrimSpace(req.DateTo); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, &receiptdomain.ValidationErrors{Errors: []receiptdomain.ValidationError{
				{Field: "date_to", Code: "invalid_date", Message: "date_to must use YYYY-MM-DD"},
			}}
		}
		filter.DateTo = &to
	}

	receipts, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		s.log.Error("failed to load receipts for report", zap.Error(err))
		return nil, err
	}
	if len(receipts) == 0 {
		return nil, reportdomain.ErrEmptyResultSet
	}

	report := &reportdomain.Report{
		GeneratedAt:          s.clock.Now().Format(time.RFC3339),
		DateFrom:             strings.TrimSpace(req.DateFrom),
		DateTo:               strings.TrimSpace(req.DateTo),
		PaymentType:          filter.PaymentType,
		PaymentTypeBreakdown: make(map[string]float64),
		TemplateBreakdown:    make(map[string]int),
	}

	monthIndex := make(map[string]int)
	donorIndex := make(map[string]int)
	donors := make([]reportdomain.DonorTotal, 0)

	for i := range receipts {
		r := &receipts[i]
		amount := receiptdomain.AmountValue(r.AmountCents)

		report.TotalReceipts++
		report.TotalAmount += amount
		report.PaymentTypeBreakdown[r.PaymentType] += amount
		report.TemplateBreakdown[r.Template]++

		month := r.IssueDate.Format("January 2006")
		if idx, ok := monthIndex[month]; ok {
			report.MonthlyBreakdown[idx].Total += amount
			report.MonthlyBreakdown[idx].Count++
		} else {
			monthIndex[month] = len(report.MonthlyBreakdown)
			report.MonthlyBreakdown = append(report.MonthlyBreakdown, reportdomain.MonthlyEntry{
				Month: month,
				Total: amount,
				Count: 1,
			})
		}

		donorKey := strings.ToLower(strings.TrimSpace(r.DonorName))
		if idx, ok := donorIndex[donorKey]; ok {
			donors[idx].Total += amount
			donors[idx].Count++
		} else {
			donorIndex[donorKey] = len(donors)
			donors = append(donors, reportdomain.DonorTotal{
				DonorName: strings.TrimSpace(r.DonorName),
				Total:     amount,
				Count:     1,
			})
		}
	}

	// stable sort keeps first-encounter order between equal totals
	sort.SliceStable(donors, func(i, j int) bool {
		return donors[i].Total > donors[j].Total
	})
	if len(donors) > topDonorLimit {
		donors = donors[:topDonorLimit]
	}
	report.TopDonors = donors

	s.metrics.RecordReportGenerated(ctx)
	s.log.Info("report generated",
		zap.Int("total_receipts", report.TotalReceipts),
		zap.String("payment_type", report.PaymentType),
	)

	return report, nil
}
