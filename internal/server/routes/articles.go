package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"greenloop/internal/models"
)

// ArticleRoutes serves the marketing-site news section: a public read
// surface and the admin CRUD behind it.
type ArticleRoutes struct {
	server ServerInterface
}

func NewArticleRoutes(server ServerInterface) *ArticleRoutes {
	return &ArticleRoutes{server: server}
}

func (ar *ArticleRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(ar.server)

	r.GET("/articles", ar.listPublishedHandler)
	r.GET("/articles/:slug", ar.getArticleHandler)

	admin := r.Group("/admin/articles")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", ar.listAllHandler)
		admin.POST("", ar.createArticleHandler)
		admin.PUT("/:articleID", ar.updateArticleHandler)
		admin.DELETE("/:articleID", ar.deleteArticleHandler)
	}
}

func (ar *ArticleRoutes) listPublishedHandler(c *gin.Context) {
	articles, err := ar.server.GetModels().Articles.ListPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

func (ar *ArticleRoutes) getArticleHandler(c *gin.Context) {
	article, err := ar.server.GetModels().Articles.GetBySlug(c.Param("slug"))
	if err != nil || !article.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (ar *ArticleRoutes) listAllHandler(c *gin.Context) {
	articles, err := ar.server.GetModels().Articles.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

type articleRequest struct {
	Slug        string            `json:"slug" binding:"required,min=1,max=255"`
	Title       map[string]string `json:"title" binding:"required"`
	Body        map[string]string `json:"body" binding:"required"`
	CoverURL    string            `json:"cover_url"`
	IsPublished bool              `json:"is_published"`
}

func (ar *ArticleRoutes) createArticleHandler(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := &models.Article{
		Slug:        req.Slug,
		Title:       models.LocalizedText(req.Title),
		Body:        models.LocalizedText(req.Body),
		CoverURL:    req.CoverURL,
		IsPublished: req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	if err := ar.server.GetModels().Articles.Create(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (ar *ArticleRoutes) updateArticleHandler(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("articleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := ar.server.GetModels().Articles.Get(articleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	article.Slug = req.Slug
	article.Title = models.LocalizedText(req.Title)
	article.Body = models.LocalizedText(req.Body)
	article.CoverURL = req.CoverURL
	if req.IsPublished && !article.IsPublished {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}
	article.IsPublished = req.IsPublished

	if err := ar.server.GetModels().Articles.Update(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (ar *ArticleRoutes) deleteArticleHandler(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("articleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	if err := ar.server.GetModels().Articles.Delete(articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
