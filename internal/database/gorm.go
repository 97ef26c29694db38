package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the relational store referenced by databaseURL. A
// postgres:// or postgresql:// URL selects the postgres driver; anything
// else is treated as an sqlite DSN or file path.
func Connect(databaseURL string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dial = postgres.Open(databaseURL)
	} else {
		dial = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}
	return db, nil
}
