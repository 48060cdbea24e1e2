// Package models provides GORM-based models with a Django ORM-like interface
// for the content tables: articles, document templates and LOI documents.
package models

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection and all model managers
type DB struct {
	*gorm.DB
	Articles          *ArticleManager
	DocumentTemplates *DocumentTemplateManager
	LOIDocuments      *LOIDocumentManager
}

// NewDB creates a new database connection and initializes all managers
func NewDB() (*DB, error) {
	dsn := os.Getenv("DB_STRING")
	if dsn == "" {
		return nil, fmt.Errorf("DB_STRING environment variable not set")
	}

	// Configure GORM
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	// Open database connection
	gormDB, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create DB instance with managers
	db := &DB{
		DB:                gormDB,
		Articles:          NewArticleManager(gormDB),
		DocumentTemplates: NewDocumentTemplateManager(gormDB),
		LOIDocuments:      NewLOIDocumentManager(gormDB),
	}

	// Auto-migrate models (optional, can be disabled in production)
	if err := db.AutoMigrate(); err != nil {
		log.Printf("Warning: AutoMigrate failed: %v", err)
	}

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all models
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&Article{},
		&DocumentTemplate{},
		&LOIDocument{},
	)
}

// Transaction runs a function within a database transaction
func (db *DB) Transaction(fn func(*DB) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		txDB := &DB{
			DB:                tx,
			Articles:          NewArticleManager(tx),
			DocumentTemplates: NewDocumentTemplateManager(tx),
			LOIDocuments:      NewLOIDocumentManager(tx),
		}
		return fn(txDB)
	})
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
