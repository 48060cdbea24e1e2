package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LOIDocument is a letter-of-intent submission. Each row carries a download
// token used by the public download-counter endpoint.
type LOIDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName   string    `gorm:"column:company_name;not null" json:"company_name"`
	ContactName   string    `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail  string    `gorm:"column:contact_email" json:"contact_email"`
	Country       string    `gorm:"column:country" json:"country"`
	Language      string    `gorm:"column:language;default:'en'" json:"language"`
	DownloadToken string    `gorm:"column:download_token;uniqueIndex;not null" json:"download_token"`
	DownloadCount int       `gorm:"column:download_count;default:0" json:"download_count"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the LOIDocument model
func (LOIDocument) TableName() string {
	return "loi_documents"
}

// BeforeCreate generates a download token if not provided
func (d *LOIDocument) BeforeCreate(tx *gorm.DB) error {
	if d.DownloadToken == "" {
		raw := make([]byte, 16)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("failed to generate download token: %w", err)
		}
		d.DownloadToken = hex.EncodeToString(raw)
	}
	return nil
}

// LOIDocumentManager provides Django-like ORM methods for LOIDocument
type LOIDocumentManager struct {
	db *gorm.DB
}

// NewLOIDocumentManager creates a new LOIDocumentManager instance
func NewLOIDocumentManager(db *gorm.DB) *LOIDocumentManager {
	return &LOIDocumentManager{db: db}
}

// Create creates a new LOI document record
func (m *LOIDocumentManager) Create(doc *LOIDocument) error {
	return m.db.Create(doc).Error
}

// GetByToken retrieves an LOI document by its download token
func (m *LOIDocumentManager) GetByToken(token string) (*LOIDocument, error) {
	var doc LOIDocument
	err := m.db.First(&doc, "download_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// IncrementDownloadCount bumps the counter for a download token.
func (m *LOIDocumentManager) IncrementDownloadCount(token string) error {
	return m.db.Model(&LOIDocument{}).
		Where("download_token = ?", token).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

// List returns every LOI submission, newest first.
func (m *LOIDocumentManager) List() ([]LOIDocument, error) {
	var docs []LOIDocument
	err := m.db.Order("created_at DESC").Find(&docs).Error
	return docs, err
}
