package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"greenloop/internal/docgen"
)

// DocumentTemplate is a stored document skeleton with five parallel
// localized bodies and an ordered field list (both JSONB).
type DocumentTemplate struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string        `gorm:"column:name;not null" json:"name"`
	Type      string        `gorm:"column:type;not null" json:"type"`
	Bodies    LocalizedText `gorm:"column:bodies;type:jsonb;default:'{}'" json:"bodies"`
	Fields    FieldList     `gorm:"column:fields;type:jsonb;default:'[]'" json:"fields"`
	IsActive  bool          `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the DocumentTemplate model
func (DocumentTemplate) TableName() string {
	return "document_templates"
}

// ToTemplate converts the stored row into the docgen representation.
func (t *DocumentTemplate) ToTemplate() docgen.Template {
	return docgen.Template{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Bodies:    t.Bodies,
		Fields:    t.Fields,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// DocumentTemplateManager provides Django-like ORM methods for DocumentTemplate
type DocumentTemplateManager struct {
	db *gorm.DB
}

// NewDocumentTemplateManager creates a new DocumentTemplateManager instance
func NewDocumentTemplateManager(db *gorm.DB) *DocumentTemplateManager {
	return &DocumentTemplateManager{db: db}
}

// Create creates a new document template
func (m *DocumentTemplateManager) Create(template *DocumentTemplate) error {
	return m.db.Create(template).Error
}

// Get retrieves a document template by ID
func (m *DocumentTemplateManager) Get(id uuid.UUID) (*DocumentTemplate, error) {
	var template DocumentTemplate
	err := m.db.First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ListActive returns the active templates, newest first.
func (m *DocumentTemplateManager) ListActive() ([]DocumentTemplate, error) {
	var templates []DocumentTemplate
	err := m.db.Where("is_active = ?", true).Order("created_at DESC").Find(&templates).Error
	return templates, err
}

// Update saves template changes
func (m *DocumentTemplateManager) Update(template *DocumentTemplate) error {
	return m.db.Save(template).Error
}

// Deactivate hides a template from the submission form without deleting it.
func (m *DocumentTemplateManager) Deactivate(id uuid.UUID) error {
	return m.db.Model(&DocumentTemplate{}).Where("id = ?", id).Update("is_active", false).Error
}
