package storage

import (
	"log"
	"time"

	"github.com/slpe/agentpay/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// Client holds the database connection
	Client *gorm.DB
	// Err holds database connection error
	Err error
)

// DBConnection creates the database connection and runs migrations
func DBConnection(DSN string) error {
	log.Println("Connecting to the database with DSN: ", DSN)

	var db *gorm.DB
	var err error
	for i := 0; i < 3; i++ { // Retry mechanism
		db, err = gorm.Open(sqlite.Open(DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second) // Wait before retrying
	}
	if err != nil {
		Err = err
		log.Println("Database connection error")
		return err
	}

	if err := db.AutoMigrate(
		&models.Subject{},
		&models.KycRecord{},
		&models.OtpTransaction{},
		&models.BankAccount{},
		&models.PaymentMode{},
	); err != nil {
		Err = err
		return err
	}

	Client = db
	return nil
}

// GetClient returns the database client
func GetClient() *gorm.DB {
	return Client
}
