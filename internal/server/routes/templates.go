package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"greenloop/internal/docgen"
	"greenloop/internal/models"
)

// TemplateRoutes is the admin CRUD over document templates.
type TemplateRoutes struct {
	server ServerInterface
}

func NewTemplateRoutes(server ServerInterface) *TemplateRoutes {
	return &TemplateRoutes{server: server}
}

func (tr *TemplateRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(tr.server)

	templates := r.Group("/admin/templates")
	templates.Use(middleware.AuthMiddleware())
	{
		templates.POST("", tr.createTemplateHandler)
		templates.GET("", tr.listTemplatesHandler)
		templates.GET("/:templateID", tr.getTemplateHandler)
		templates.PUT("/:templateID", tr.updateTemplateHandler)
		templates.DELETE("/:templateID", tr.deactivateTemplateHandler)
	}
}

type templateRequest struct {
	Name   string            `json:"name" binding:"required,min=1,max=255"`
	Type   string            `json:"type" binding:"required,min=1,max=100"`
	Bodies map[string]string `json:"bodies"`
	Fields []docgen.Field    `json:"fields"`
}

func (req *templateRequest) validate() string {
	nonEmpty := false
	for lang, body := range req.Bodies {
		known := false
		for _, l := range docgen.Languages {
			if lang == l {
				known = true
				break
			}
		}
		if !known {
			return "Unsupported body language: " + lang
		}
		if body != "" {
			nonEmpty = true
		}
	}
	if !nonEmpty {
		return "At least one non-empty body is required"
	}

	seen := make(map[string]bool)
	for _, field := range req.Fields {
		if field.Name == "" {
			return "Every field needs a name"
		}
		if seen[field.Name] {
			return "Duplicate field name: " + field.Name
		}
		seen[field.Name] = true
		switch field.Type {
		case "text", "email", "tel", "textarea", "select", "checkbox", "file":
		default:
			return "Invalid field type: " + field.Type
		}
	}
	return ""
}

func (tr *TemplateRoutes) createTemplateHandler(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	template := &models.DocumentTemplate{
		Name:     req.Name,
		Type:     req.Type,
		Bodies:   models.LocalizedText(req.Bodies),
		Fields:   models.FieldList(req.Fields),
		IsActive: true,
	}

	if err := tr.server.GetModels().DocumentTemplates.Create(template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

func (tr *TemplateRoutes) listTemplatesHandler(c *gin.Context) {
	templates, err := tr.server.GetModels().DocumentTemplates.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

func (tr *TemplateRoutes) getTemplateHandler(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	template, err := tr.server.GetModels().DocumentTemplates.Get(templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

func (tr *TemplateRoutes) updateTemplateHandler(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	template, err := tr.server.GetModels().DocumentTemplates.Get(templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	template.Name = req.Name
	template.Type = req.Type
	template.Bodies = models.LocalizedText(req.Bodies)
	template.Fields = models.FieldList(req.Fields)

	if err := tr.server.GetModels().DocumentTemplates.Update(template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

func (tr *TemplateRoutes) deactivateTemplateHandler(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	if err := tr.server.GetModels().DocumentTemplates.Deactivate(templateID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
