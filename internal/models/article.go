package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a marketing-site news article with localized title and body.
type Article struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string        `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Title       LocalizedText `gorm:"column:title;type:jsonb;default:'{}'" json:"title"`
	Body        LocalizedText `gorm:"column:body;type:jsonb;default:'{}'" json:"body"`
	CoverURL    string        `gorm:"column:cover_url" json:"cover_url"`
	IsPublished bool          `gorm:"column:is_published;default:false" json:"is_published"`
	PublishedAt *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// ArticleManager provides Django-like ORM methods for Article
type ArticleManager struct {
	db *gorm.DB
}

// NewArticleManager creates a new ArticleManager instance
func NewArticleManager(db *gorm.DB) *ArticleManager {
	return &ArticleManager{db: db}
}

// Create creates a new article
func (m *ArticleManager) Create(article *Article) error {
	return m.db.Create(article).Error
}

// Get retrieves an article by ID
func (m *ArticleManager) Get(id uuid.UUID) (*Article, error) {
	var article Article
	err := m.db.First(&article, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves an article by its slug
func (m *ArticleManager) GetBySlug(slug string) (*Article, error) {
	var article Article
	err := m.db.First(&article, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListPublished returns published articles, newest first.
func (m *ArticleManager) ListPublished() ([]Article, error) {
	var articles []Article
	err := m.db.Where("is_published = ?", true).Order("published_at DESC").Find(&articles).Error
	return articles, err
}

// List returns every article for the admin console, newest first.
func (m *ArticleManager) List() ([]Article, error) {
	var articles []Article
	err := m.db.Order("created_at DESC").Find(&articles).Error
	return articles, err
}

// Update saves article changes
func (m *ArticleManager) Update(article *Article) error {
	return m.db.Save(article).Error
}

// Delete removes an article
func (m *ArticleManager) Delete(id uuid.UUID) error {
	return m.db.Delete(&Article{}, "id = ?", id).Error
}
