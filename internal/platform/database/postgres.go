package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

// NewPostgresDB opens the connection pool and runs the schema migration.
func NewPostgresDB(dsn string, maxIdleConns, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS bank").Error; err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Account{}, &domain.Posting{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
