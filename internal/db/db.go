package db

import (
	"github.com/glebarez/sqlite"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/config"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Module opens the process-owned database and runs schema migration.
//
// The default DSN is an in-memory SQLite database: receipt data lives only as
// long as the process and resets on restart.
var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(Migrate),
)

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	log.Info("database opened", zap.String("dsn", cfg.DatabaseDSN))
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&receiptdomain.Receipt{},
		&receiptdomain.ReceiptSequence{},
		&templatedomain.Template{},
		&notificationdomain.Notification{},
	)
}
