package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	"github.com/parishlabs/tdrms/internal/receipt/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type notificationRecorder struct {
	recorded []notificationdomain.RecordRequest
}

func (n *notificationRecorder) Record(ctx context.Context, req notificationdomain.RecordRequest) (*notificationdomain.Response, error) {
	n.recorded = append(n.recorded, req)
	return &notificationdomain.Response{Type: req.Type, Message: req.Message}, nil
}

func (n *notificationRecorder) List(ctx context.Context) ([]notificationdomain.Response, error) {
	return nil, nil
}

func (n *notificationRecorder) MarkRead(ctx context.Context, id string) error { return nil }

func (n *notificationRecorder) MarkAllRead(ctx context.Context) error { return nil }

func setupReceiptService(t *testing.T, clk clock.Clock) (receiptdomain.Service, *gorm.DB, *notificationRecorder) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&receiptdomain.Receipt{}, &receiptdomain.ReceiptSequence{}))

	recorder := &notificationRecorder{}
	svc := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		Clock:         clk,
		Repo:          repository.Provide(),
		Notifications: recorder,
	})

	return svc, db, recorder
}

func issueRequest() receiptdomain.IssueRequest {
	return receiptdomain.IssueRequest{
		DonorName:   "Juan Dela Cruz",
		ContactInfo: "juan@email.com",
		Amount:      "5000.00",
		PaymentType: receiptdomain.PaymentTypeDonation,
		Template:    receiptdomain.TemplateStandard,
		Description: "Monthly church donation",
		Tags:        []string{"Church", "Monthly"},
		IssuedBy:    "Maria Santos",
	}
}

func TestIssueAssignsSequentialIdentifiers(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, recorder := setupReceiptService(t, clk)
	ctx := context.Background()

	first, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-001", first.ID)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, 5000.0, first.Amount)

	clk.Advance(24 * time.Hour)
	second, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-002", second.ID)

	require.Len(t, recorder.recorded, 2)
	assert.Equal(t, notificationdomain.TypeSuccess, recorder.recorded[0].Type)
	assert.Contains(t, recorder.recorded[0].Message, "RCP-2024-001")
}

func TestIssueRestartsSequencePerYear(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)
	ctx := context.Background()

	first, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-001", first.ID)

	clk.Advance(48 * time.Hour)
	second, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2025-001", second.ID)
}

func TestIssueReportsAllFieldFailures(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, db, recorder := setupReceiptService(t, clk)

	req := issueRequest()
	req.DonorName = "   "
	req.Amount = "0"
	req.PaymentType = "Tithe"

	_, err := svc.Issue(context.Background(), req)
	require.Error(t, err)

	verrs, ok := receiptdomain.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs.Errors, 3)
	assert.Equal(t, "payment_type", verrs.Errors[0].Field)
	assert.Equal(t, "donor_name", verrs.Errors[1].Field)
	assert.Equal(t, "amount", verrs.Errors[2].Field)

	var count int64
	require.NoError(t, db.Model(&receiptdomain.Receipt{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, recorder.recorded)

	// the counter must not advance on a rejected submission
	ok2, err := svc.Issue(context.Background(), issueRequest())
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-001", ok2.ID)
}

func TestIssueRejectsFractionalCentavos(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)

	req := issueRequest()
	req.Amount = "100.999"

	_, err := svc.Issue(context.Background(), req)
	require.Error(t, err)

	verrs, ok := receiptdomain.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs.Errors, 1)
	assert.Equal(t, "amount", verrs.Errors[0].Field)
}

func TestIssueRejectsSignedAmountParts(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)

	for _, amount := range []string{"12.-5", "12.+5", "+12.50"} {
		req := issueRequest()
		req.Amount = amount

		_, err := svc.Issue(context.Background(), req)
		require.Error(t, err, amount)

		verrs, ok := receiptdomain.AsValidationErrors(err)
		require.True(t, ok, amount)
		require.Len(t, verrs.Errors, 1)
		assert.Equal(t, "amount", verrs.Errors[0].Field)
	}
}

func TestIssueNormalizesTags(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)

	req := issueRequest()
	req.Tags = []string{" Church ", "church", "", "Monthly"}

	resp, err := svc.Issue(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Church", "Monthly"}, resp.Tags)
}

func TestListSearchesAcrossFields(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)
	ctx := context.Background()

	_, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)

	other := issueRequest()
	other.DonorName = "Maria Garcia"
	other.PaymentType = receiptdomain.PaymentTypeMembership
	other.Description = "Annual membership dues"
	clk.Advance(24 * time.Hour)
	_, err = svc.Issue(ctx, other)
	require.NoError(t, err)

	// donor name match is case-insensitive
	got, err := svc.List(ctx, receiptdomain.ListRequest{Search: "juan dela"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "RCP-2024-001", got[0].ID)

	// identifier substring match
	got, err = svc.List(ctx, receiptdomain.ListRequest{Search: "rcp-2024-002"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Maria Garcia", got[0].DonorName)

	// payment type filter is exact
	got, err = svc.List(ctx, receiptdomain.ListRequest{PaymentType: receiptdomain.PaymentTypeMembership})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "RCP-2024-002", got[0].ID)
}

func TestListDateRangeIsInclusive(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Issue(ctx, issueRequest())
		require.NoError(t, err)
		clk.Advance(24 * time.Hour)
	}

	got, err := svc.List(ctx, receiptdomain.ListRequest{DateFrom: "2024-01-15", DateTo: "2024-01-16"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "RCP-2024-001", got[0].ID)
	assert.Equal(t, "RCP-2024-002", got[1].ID)
}

func TestGetByIDIgnoresCaseAndPadding(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC))
	svc, _, _ := setupReceiptService(t, clk)
	ctx := context.Background()

	_, err := svc.Issue(ctx, issueRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "  rcp-2024-001 ")
	require.NoError(t, err)
	assert.Equal(t, "RCP-2024-001", got.ID)

	_, err = svc.GetByID(ctx, "RCP-2099-999")
	assert.ErrorIs(t, err, receiptdomain.ErrReceiptNotFound)
}
