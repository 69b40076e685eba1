package db

import (
	"fmt"
	"strings"
	"time"

	"loan-refinance/internal/domain/account"
	"loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/refinance"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn, logLevel string) (*gorm.DB, error) {
	return openGorm(mysql.Open(dsn), logLevel)
}

// OpenGormWithDialector is OpenGorm for a caller-built dialector (tests, custom drivers).
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openGorm(dial, "warn")
}

func openGorm(dial gorm.Dialector, logLevel string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(ParseLogLevel(logLevel)),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("gorm: ping: %w", err)
	}
	return db, nil
}

func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate creates or updates the MySQL tables for every persisted aggregate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loan.Loan{},
		&offer.Offer{},
		&account.Account{},
		&account.Transaction{},
		&refinance.Operation{},
	)
}
