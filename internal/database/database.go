package database

import (
	"fmt"
	"strings"

	"worknest-console/internal/logger"
	"worknest-console/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the session database and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func InitDB(path, logLevel string) (*gorm.DB, error) {
	level := gormlogger.Warn
	if strings.EqualFold(logLevel, "debug") {
		level = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	if err := db.AutoMigrate(&models.ConsoleSession{}, &models.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Get().Info().Str("path", path).Msg("Database connected and migrated successfully")
	return db, nil
}
