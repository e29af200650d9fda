package service

import (
	"context"
	"strings"
	"testing"

	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receiptStub struct {
	receipts map[string]*receiptdomain.Response
}

func (r *receiptStub) Issue(ctx context.Context, req receiptdomain.IssueRequest) (*receiptdomain.Response, error) {
	return nil, nil
}

func (r *receiptStub) List(ctx context.Context, req receiptdomain.ListRequest) ([]receiptdomain.Response, error) {
	return nil, nil
}

func (r *receiptStub) GetByID(ctx context.Context, id string) (*receiptdomain.Response, error) {
	if resp, ok := r.receipts[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return resp, nil
	}
	return nil, receiptdomain.ErrReceiptNotFound
}

func setupVerification(t *testing.T) verificationdomain.Service {
	t.Helper()
	return New(Params{
		Log: zap.NewNop(),
		Receipts: &receiptStub{receipts: map[string]*receiptdomain.Response{
			"RCP-2024-001": {
				ID:        "RCP-2024-001",
				Date:      "2024-01-15",
				DonorName: "Juan Dela Cruz",
				Amount:    5000,
				IssuedBy:  "Maria Santos",
			},
		}},
	})
}

func TestVerifyByIdentifier(t *testing.T) {
	svc := setupVerification(t)

	result, err := svc.Verify(context.Background(), verificationdomain.VerifyRequest{ReceiptID: " rcp-2024-001 "})
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "RCP-2024-001", result.Receipt.ID)
}

func TestVerifyRequiresIdentifier(t *testing.T) {
	svc := setupVerification(t)

	_, err := svc.Verify(context.Background(), verificationdomain.VerifyRequest{ReceiptID: "   "})
	assert.ErrorIs(t, err, verificationdomain.ErrMissingIdentifier)
}

func TestVerifyUnknownReceipt(t *testing.T) {
	svc := setupVerification(t)

	_, err := svc.Verify(context.Background(), verificationdomain.VerifyRequest{ReceiptID: "RCP-2099-999"})
	assert.ErrorIs(t, err, verificationdomain.ErrReceiptNotFound)
}

func TestVerifyCorroboratingInputs(t *testing.T) {
	svc := setupVerification(t)
	ctx := context.Background()

	result, err := svc.Verify(ctx, verificationdomain.VerifyRequest{
		ReceiptID: "RCP-2024-001",
		DonorName: "  juan dela cruz ",
		Amount:    "5000.00",
	})
	require.NoError(t, err)
	assert.True(t, result.Verified)

	_, err = svc.Verify(ctx, verificationdomain.VerifyRequest{
		ReceiptID: "RCP-2024-001",
		DonorName: "Pedro Santos",
	})
	assert.ErrorIs(t, err, verificationdomain.ErrDonorMismatch)

	_, err = svc.Verify(ctx, verificationdomain.VerifyRequest{
		ReceiptID: "RCP-2024-001",
		Amount:    "4999.99",
	})
	assert.ErrorIs(t, err, verificationdomain.ErrAmountMismatch)

	_, err = svc.Verify(ctx, verificationdomain.VerifyRequest{
		ReceiptID: "RCP-2024-001",
		Amount:    "five thousand",
	})
	assert.ErrorIs(t, err, verificationdomain.ErrInvalidAmount)
}

func TestVerifyPayload(t *testing.T) {
	svc := setupVerification(t)
	ctx := context.Background()

	result, err := svc.VerifyPayload(ctx, `{"receiptId":"RCP-2024-001","donorName":"Juan Dela Cruz","amount":5000,"date":"2024-01-15","issuedBy":"Maria Santos"}`)
	require.NoError(t, err)
	assert.True(t, result.Verified)

	_, err = svc.VerifyPayload(ctx, `{"donorName":"Juan Dela Cruz"}`)
	assert.ErrorIs(t, err, verificationdomain.ErrMalformedPayload)

	_, err = svc.VerifyPayload(ctx, `not-json`)
	assert.ErrorIs(t, err, verificationdomain.ErrMalformedPayload)

	_, err = svc.VerifyPayload(ctx, `{"receiptId":"RCP-2024-001","amount":4999.99}`)
	assert.ErrorIs(t, err, verificationdomain.ErrAmountMismatch)
}
