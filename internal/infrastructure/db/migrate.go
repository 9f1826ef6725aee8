package db

import (
	"gorm.io/gorm"

	"loan-portal/internal/domain/creditscore"
	"loan-portal/internal/domain/decision"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/notification"
	"loan-portal/internal/domain/transaction"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loan.Loan{},
		&decision.Decision{},
		&transaction.Transaction{},
		&creditscore.CreditScore{},
		&notification.Notification{},
	)
}
