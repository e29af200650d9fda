package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	"github.com/parishlabs/tdrms/internal/observability/metrics"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	Repo          receiptdomain.Repository
	Notifications notificationdomain.Service
	Metrics       *metrics.Metrics `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	repo          receiptdomain.Repository
	notifications notificationdomain.Service
	metrics       *metrics.Metrics
}

func New(p Params) receiptdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("receipt.service"),
		clock:         p.Clock,
		repo:          p.Repo,
		notifications: p.Notifications,
		metrics:       p.Metrics,
	}
}

// Issue validates the whole submission before touching the store. All field
// failures are reported together; a rejected submission leaves the store and
// the issuance counter untouched.
func (s *Service) Issue(ctx context.Context, req receiptdomain.IssueRequest) (*receiptdomain.Response, error) {
	verrs := &receiptdomain.ValidationErrors{}

	paymentType := strings.TrimSpace(req.PaymentType)
	if !receiptdomain.ValidPaymentType(paymentType) {
		verrs.Add("payment_type", "invalid_payment_type", "payment type must be one of: "+strings.Join(receiptdomain.PaymentTypes(), ", "))
	}

	template := strings.TrimSpace(req.Template)
	if !receiptdomain.ValidTemplateName(template) {
		verrs.Add("template", "invalid_template", "template must be one of: "+strings.Join(receiptdomain.TemplateNames(), ", "))
	}

	donorName := strings.TrimSpace(req.DonorName)
	if donorName == "" {
		verrs.Add("donor_name", "required", "donor name is required")
	}

	contactInfo := strings.TrimSpace(req.ContactInfo)
	if contactInfo == "" {
		verrs.Add("contact_info", "required", "contact info is required")
	}

	amountCents, err := receiptdomain.ParseAmountCents(req.Amount)
	if err != nil || amountCents <= 0 {
		verrs.Add("amount", "invalid_amount", "amount must be a positive number with at most two decimal places")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		verrs.Add("description", "required", "description is required")
	}

	issueDate := s.clock.Now()
	if raw := strings.TrimSpace(req.IssueDate); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			verrs.Add("issue_date", "invalid_date", "issue date must use YYYY-MM-DD")
		} else {
			issueDate = parsed
		}
	}

	if verrs.HasErrors() {
		return nil, verrs
	}

	seq, err := s.repo.NextSequence(ctx, s.db, issueDate.Year())
	if err != nil {
		s.log.Error("failed to claim receipt sequence", zap.Error(err))
		return nil, err
	}

	receipt := &receiptdomain.Receipt{
		ID:          receiptdomain.FormatID(issueDate.Year(), seq),
		IssueDate:   issueDate,
		DonorName:   donorName,
		ContactInfo: contactInfo,
		AmountCents: amountCents,
		PaymentType: paymentType,
		Template:    template,
		Description: description,
		Tags:        normalizeTags(req.Tags),
		IssuedBy:    strings.TrimSpace(req.IssuedBy),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, receipt); err != nil {
		s.log.Error("failed to insert receipt", zap.Error(err), zap.String("receipt_id", receipt.ID))
		return nil, err
	}

	if s.notifications != nil {
		_, err := s.notifications.Record(ctx, notificationdomain.RecordRequest{
			Type:    notificationdomain.TypeSuccess,
			Message: fmt.Sprintf("Receipt %s issued for %s", receipt.ID, receipt.DonorName),
		})
		if err != nil {
			s.log.Warn("failed to record issuance notification", zap.Error(err))
		}
	}

	s.metrics.RecordReceiptIssued(ctx, receipt.PaymentType)
	s.log.Info("receipt issued",
		zap.String("receipt_id", receipt.ID),
		zap.String("payment_type", receipt.PaymentType),
		zap.Int64("amount_cents", receipt.AmountCents),
	)

	return receiptdomain.ToResponse(receipt), nil
}

func (s *Service) List(ctx context.Context, req receiptdomain.ListRequest) ([]receiptdomain.Response, error) {
	filter := receiptdomain.Filter{
		Search:      strings.TrimSpace(req.Search),
		PaymentType: strings.TrimSpace(req.PaymentType),
		Template:    strings.TrimSpace(req.Template),
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
		s.log.Error("failed to list receipts", zap.Error(err))
		return nil, err
	}

	out := make([]receiptdomain.Response, 0, len(receipts))
	for i := range receipts {
		out = append(out, *receiptdomain.ToResponse(&receipts[i]))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*receiptdomain.Response, error) {
	if strings.TrimSpace(id) == "" {
		return nil, receiptdomain.ErrReceiptNotFound
	}

	receipt, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		s.log.Error("failed to find receipt", zap.Error(err), zap.String("receipt_id", id))
		return nil, err
	}
	if receipt == nil {
		return nil, receiptdomain.ErrReceiptNotFound
	}
	return receiptdomain.ToResponse(receipt), nil
}

// normalizeTags trims entries, drops blanks, and collapses duplicates while
// preserving first-seen order and casing.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
