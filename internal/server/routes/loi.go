package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greenloop/internal/models"
)

// LOIRoutes handles letter-of-intent submissions and the public download
// counter each submission's token drives.
type LOIRoutes struct {
	server ServerInterface
}

func NewLOIRoutes(server ServerInterface) *LOIRoutes {
	return &LOIRoutes{server: server}
}

func (lr *LOIRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(lr.server)

	r.POST("/loi", lr.createHandler)
	r.POST("/loi/download/:token", lr.downloadHandler)

	admin := r.Group("/admin/loi")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", lr.listHandler)
	}
}

type loiRequest struct {
	CompanyName  string `json:"company_name" binding:"required,min=1,max=255"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Country      string `json:"country"`
	Language     string `json:"language"`
}

func (lr *LOIRoutes) createHandler(c *gin.Context) {
	var req loiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	doc := &models.LOIDocument{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Country:      req.Country,
		Language:     req.Language,
	}

	if err := lr.server.GetModels().LOIDocuments.Create(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             doc.ID,
		"download_token": doc.DownloadToken,
	})
}

// downloadHandler bumps the download counter for a token. The document file
// itself is served statically by the site; this endpoint only keeps count.
func (lr *LOIRoutes) downloadHandler(c *gin.Context) {
	token := c.Param("token")
	loi := lr.server.GetModels().LOIDocuments

	if _, err := loi.GetByToken(token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown download token"})
		return
	}

	if err := loi.IncrementDownloadCount(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record download"})
		return
	}

	doc, err := loi.GetByToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record download"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_count": doc.DownloadCount})
}

func (lr *LOIRoutes) listHandler(c *gin.Context) {
	docs, err := lr.server.GetModels().LOIDocuments.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}
