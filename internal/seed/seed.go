// Package seed bootstraps the demo dataset for fresh databases.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/auth/password"
	"github.com/parishlabs/tdrms/internal/clock"
	"github.com/parishlabs/tdrms/internal/config"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const organizationName = "St. Mary's Parish"

type seedUser struct {
	Username    string
	Password    string
	DisplayName string
	Role        authdomain.Role
}

var seedUsers = []seedUser{
	{Username: "admin", Password: "admin123", DisplayName: "System Administrator", Role: authdomain.RoleAdmin},
	{Username: "encoder", Password: "encoder123", DisplayName: "Maria Santos", Role: authdomain.RoleEncoder},
	{Username: "viewer", Password: "viewer123", DisplayName: "John Doe", Role: authdomain.RoleViewer},
}

type seedReceipt struct {
	ID          string
	Date        time.Time
	DonorName   string
	ContactInfo string
	AmountCents int64
	PaymentType string
	Template    string
	Description string
	Tags        []string
	IssuedBy    string
}

var seedReceipts = []seedReceipt{
	{
		ID:          "RCP-2024-001",
		Date:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		DonorName:   "Juan Dela Cruz",
		ContactInfo: "juan@email.com",
		AmountCents: 500000,
		PaymentType: receiptdomain.PaymentTypeDonation,
		Template:    receiptdomain.TemplateStandard,
		Description: "Monthly church donation",
		Tags:        []string{"Church", "Monthly"},
		IssuedBy:    "Maria Santos",
	},
	{
		ID:          "RCP-2024-002",
		Date:        time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
		DonorName:   "Maria Garcia",
		ContactInfo: "maria@email.com",
		AmountCents: 250000,
		PaymentType: receiptdomain.PaymentTypeMembership,
		Template:    receiptdomain.TemplateMembership,
		Description: "Annual membership fee",
		Tags:        []string{"Membership"},
		IssuedBy:    "Maria Santos",
	},
	{
		ID:          "RCP-2024-003",
		Date:        time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC),
		DonorName:   "Pedro Santos",
		ContactInfo: "pedro@email.com",
		AmountCents: 100000,
		PaymentType: receiptdomain.PaymentTypePurchase,
		Template:    receiptdomain.TemplateEvent,
		Description: "Parish fundraising event",
		Tags:        []string{"Event"},
		IssuedBy:    "Maria Santos",
	},
}

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	GenID  *snowflake.Node
}

// Run seeds the demo users, templates, and receipts on an empty database. It
// is a no-op when accounts already exist or seeding is disabled.
func Run(p Params) error {
	if !p.Config.SeedDemoData {
		return nil
	}

	log := p.Log.Named("seed")
	ctx := context.Background()

	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing authdomain.User
		err := tx.WithContext(ctx).Where("username = ?", seedUsers[0].Username).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := p.Clock.Now().UTC()

		for _, su := range seedUsers {
			hashed, err := password.Hash(su.Password)
			if err != nil {
				return err
			}
			user := authdomain.User{
				ID:           p.GenID.Generate(),
				Username:     su.Username,
				DisplayName:  su.DisplayName,
				PasswordHash: hashed,
				Role:         su.Role,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
				return err
			}
		}

		if err := seedTemplates(ctx, tx, p.GenID, now); err != nil {
			return err
		}
		if err := seedReceiptRows(ctx, tx); err != nil {
			return err
		}

		welcome := notificationdomain.Notification{
			ID:        p.GenID.Generate(),
			Type:      notificationdomain.TypeInfo,
			Message:   "Demo data loaded for " + organizationName,
			CreatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&welcome).Error; err != nil {
			return err
		}

		log.Info("demo data seeded",
			zap.Int("users", len(seedUsers)),
			zap.Int("receipts", len(seedReceipts)),
		)
		return nil
	})
}

func seedTemplates(ctx context.Context, tx *gorm.DB, genID *snowflake.Node, now time.Time) error {
	templates := []templatedomain.Template{
		{
			Name:         receiptdomain.TemplateStandard,
			Organization: organizationName,
			Address:      "123 Church Street, Manila",
			Purpose:      "Official donation receipt",
			Signatories: []templatedomain.Signatory{
				{Name: "Fr. Jose Reyes", Title: "Parish Priest"},
				{Name: "Maria Santos", Title: "Treasurer"},
			},
			Branding: templatedomain.Branding{
				PrimaryColor:   templatedomain.DefaultPrimaryColor,
				SecondaryColor: templatedomain.DefaultSecondaryColor,
			},
		},
		{
			Name:         receiptdomain.TemplateMembership,
			Organization: organizationName,
			Address:      "123 Church Street, Manila",
			Purpose:      "Membership fee acknowledgement",
			Signatories: []templatedomain.Signatory{
				{Name: "Maria Santos", Title: "Treasurer"},
			},
			Branding: templatedomain.Branding{
				PrimaryColor:   "#2a5298",
				SecondaryColor: templatedomain.DefaultSecondaryColor,
			},
		},
		{
			Name:         receiptdomain.TemplateEvent,
			Organization: organizationName,
			Address:      "123 Church Street, Manila",
			Purpose:      "Special event receipt",
			Signatories: []templatedomain.Signatory{
				{Name: "Fr. Jose Reyes", Title: "Parish Priest"},
			},
			Branding: templatedomain.Branding{
				PrimaryColor:   "#8B0000",
				SecondaryColor: "#D4AF37",
			},
		},
	}

	for i := range templates {
		templates[i].ID = genID.Generate()
		templates[i].Active = true
		templates[i].CreatedAt = now
		templates[i].UpdatedAt = now
		if err := tx.WithContext(ctx).Create(&templates[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedReceiptRows(ctx context.Context, tx *gorm.DB) error {
	for _, sr := range seedReceipts {
		receipt := receiptdomain.Receipt{
			ID:          sr.ID,
			IssueDate:   sr.Date,
			DonorName:   sr.DonorName,
			ContactInfo: sr.ContactInfo,
			AmountCents: sr.AmountCents,
			PaymentType: sr.PaymentType,
			Template:    sr.Template,
			Description: sr.Description,
			Tags:        sr.Tags,
			IssuedBy:    sr.IssuedBy,
			CreatedAt:   sr.Date,
		}
		if err := tx.WithContext(ctx).Create(&receipt).Error; err != nil {
			return err
		}
	}

	// keep the issuance counter ahead of the seeded identifiers
	seq := receiptdomain.ReceiptSequence{Year: 2024, Next: int64(len(seedReceipts)) + 1}
	return tx.WithContext(ctx).Create(&seq).Error
}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)
