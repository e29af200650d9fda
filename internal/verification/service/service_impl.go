package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/parishlabs/tdrms/internal/observability/metrics"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Receipts receiptdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	receipts receiptdomain.Service
	metrics  *metrics.Metrics
}

func New(p Params) verificationdomain.Service {
	return &Service{
		log:      p.Log.Named("verification.service"),
		receipts: p.Receipts,
		metrics:  p.Metrics,
	}
}

func (s *Service) Verify(ctx context.Context, req verificationdomain.VerifyRequest) (*verificationdomain.Result, error) {
	id := strings.TrimSpace(req.ReceiptID)
	if id == "" {
		return nil, s.fail(ctx, verificationdomain.ErrMissingIdentifier)
	}

	receipt, err := s.receipts.GetByID(ctx, id)
	if errors.Is(err, receiptdomain.ErrReceiptNotFound) {
		return nil, s.fail(ctx, verificationdomain.ErrReceiptNotFound)
	}
	if err != nil {
		return nil, err
	}

	if donor := strings.TrimSpace(req.DonorName); donor != "" {
		if !strings.EqualFold(donor, strings.TrimSpace(receipt.DonorName)) {
			return nil, s.fail(ctx, verificationdomain.ErrDonorMismatch)
		}
	}

	if amount := strings.TrimSpace(req.Amount); amount != "" {
		cents, err := receiptdomain.ParseAmountCents(amount)
		if err != nil {
			return nil, s.fail(ctx, verificationdomain.ErrInvalidAmount)
		}
		stored := int64(math.Round(receipt.Amount * 100))
		if cents != stored {
			return nil, s.fail(ctx, verificationdomain.ErrAmountMismatch)
		}
	}

	s.metrics.RecordVerification(ctx, "verified")
	s.log.Info("receipt verified", zap.String("receipt_id", receipt.ID))
	return &verificationdomain.Result{Verified: true, Receipt: receipt}, nil
}

// VerifyPayload decodes a scanned QR bundle and delegates to Verify. There is
// no cryptographic check: authenticity comes from the store lookup alone.
func (s *Service) VerifyPayload(ctx context.Context, payload string) (*verificationdomain.Result, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, s.fail(ctx, verificationdomain.ErrMalformedPayload)
	}

	var bundle verificationdomain.Payload
	if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
		return nil, s.fail(ctx, verificationdomain.ErrMalformedPayload)
	}
	if strings.TrimSpace(bundle.ReceiptID) == "" {
		return nil, s.fail(ctx, verificationdomain.ErrMalformedPayload)
	}

	req := verificationdomain.VerifyRequest{
		ReceiptID: bundle.ReceiptID,
		DonorName: bundle.DonorName,
	}
	if bundle.Amount != 0 {
		req.Amount = strconv.FormatFloat(bundle.Amount, 'f', 2, 64)
	}
	return s.Verify(ctx, req)
}

func (s *Service) fail(ctx context.Context, err error) error {
	s.metrics.RecordVerification(ctx, "failed")
	return err
}
