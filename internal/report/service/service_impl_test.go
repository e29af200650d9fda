package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/parishlabs/tdrms/internal/clock"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	receiptrepository "github.com/parishlabs/tdrms/internal/receipt/repository"
	reportdomain "github.com/parishlabs/tdrms/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupReportService(t *testing.T, clk clock.Clock) (reportdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&receiptdomain.Receipt{}, &receiptdomain.ReceiptSequence{}))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clk,
		Repo:  receiptrepository.Provide(),
	})

	return svc, db
}

func seedReceipt(t *testing.T, db *gorm.DB, id string, day time.Time, donor string, cents int64, paymentType, template string) {
	t.Helper()
	err := db.Create(&receiptdomain.Receipt{
		ID:          id,
		IssueDate:   day,
		DonorName:   donor,
		ContactInfo: donor + "@email.com",
		AmountCents: cents,
		PaymentType: paymentType,
		Template:    template,
		Description: "seeded",
		IssuedBy:    "Maria Santos",
		CreatedAt:   day,
	}).Error
	require.NoError(t, err)
}

func TestGenerateFoldsBreakdowns(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC))
	svc, db := setupReportService(t, clk)

	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	jan16 := time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	seedReceipt(t, db, "RCP-2024-001", jan15, "Juan Dela Cruz", 500000, receiptdomain.PaymentTypeDonation, receiptdomain.TemplateStandard)
	seedReceipt(t, db, "RCP-2024-002", jan16, "Maria Garcia", 250000, receiptdomain.PaymentTypeMembership, receiptdomain.TemplateMembership)
	seedReceipt(t, db, "RCP-2024-003", feb1, "Juan Dela Cruz", 100000, receiptdomain.PaymentTypeDonation, receiptdomain.TemplateStandard)

	report, err := svc.Generate(context.Background(), reportdomain.GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalReceipts)
	assert.InDelta(t, 8500.0, report.TotalAmount, 0.001)

	assert.InDelta(t, 6000.0, report.PaymentTypeBreakdown[receiptdomain.PaymentTypeDonation], 0.001)
	assert.InDelta(t, 2500.0, report.PaymentTypeBreakdown[receiptdomain.PaymentTypeMembership], 0.001)

	assert.Equal(t, 2, report.TemplateBreakdown[receiptdomain.TemplateStandard])
	assert.Equal(t, 1, report.TemplateBreakdown[receiptdomain.TemplateMembership])

	require.Len(t, report.MonthlyBreakdown, 2)
	assert.Equal(t, "January 2024", report.MonthlyBreakdown[0].Month)
	assert.InDelta(t, 7500.0, report.MonthlyBreakdown[0].Total, 0.001)
	assert.Equal(t, 2, report.MonthlyBreakdown[0].Count)
	assert.Equal(t, "February 2024", report.MonthlyBreakdown[1].Month)

	require.Len(t, report.TopDonors, 2)
	assert.Equal(t, "Juan Dela Cruz", report.TopDonors[0].DonorName)
	assert.InDelta(t, 6000.0, report.TopDonors[0].Total, 0.001)
	assert.Equal(t, 2, report.TopDonors[0].Count)

	// breakdown sums equal the grand total
	var paymentSum float64
	for _, v := range report.PaymentTypeBreakdown {
		paymentSum += v
	}
	assert.InDelta(t, report.TotalAmount, paymentSum, 0.001)
}

func TestGenerateTopDonorsTieKeepsFirstEncounter(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC))
	svc, db := setupReportService(t, clk)

	day := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	donors := []string{"Ana", "Ben", "Carla", "Dan", "Eva", "Fe", "Gil"}
	for i, donor := range donors {
		seedReceipt(t, db, fmt.Sprintf("RCP-2024-%03d", i+1), day.Add(time.Duration(i)*time.Hour), donor, 100000, receiptdomain.PaymentTypeDonation, receiptdomain.TemplateStandard)
	}

	report, err := svc.Generate(context.Background(), reportdomain.GenerateRequest{})
	require.NoError(t, err)

	require.Len(t, report.TopDonors, 5)
	for i, donor := range donors[:5] {
		assert.Equal(t, donor, report.TopDonors[i].DonorName)
	}
}

func TestGenerateFilters(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC))
	svc, db := setupReportService(t, clk)

	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	jan17 := time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)

	seedReceipt(t, db, "RCP-2024-001", jan15, "Juan Dela Cruz", 500000, receiptdomain.PaymentTypeDonation, receiptdomain.TemplateStandard)
	seedReceipt(t, db, "RCP-2024-002", jan17, "Pedro Santos", 100000, receiptdomain.PaymentTypePurchase, receiptdomain.TemplateEvent)

	report, err := svc.Generate(context.Background(), reportdomain.GenerateRequest{PaymentType: receiptdomain.PaymentTypeDonation})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalReceipts)
	assert.InDelta(t, 5000.0, report.TotalAmount, 0.001)

	report, err = svc.Generate(context.Background(), reportdomain.GenerateRequest{DateFrom: "2024-01-16", DateTo: "2024-01-17"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalReceipts)
	assert.Equal(t, "Pedro Santos", report.TopDonors[0].DonorName)
}

func TestGenerateEmptyResultSet(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.February, 1, 8, 0, 0, 0, time.UTC))
	svc, _ := setupReportService(t, clk)

	_, err := svc.Generate(context.Background(), reportdomain.GenerateRequest{})
	assert.ErrorIs(t, err, reportdomain.ErrEmptyResultSet)
}
