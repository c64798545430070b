package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the gorm/postgres connection and migrates the
// single RoomSnapshot table, pared down from the teacher's
// internal/repository/postgres/connection.go which auto-migrated one
// table per League-draft domain type.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&RoomSnapshot{}); err != nil {
		return nil, err
	}

	return db, nil
}
