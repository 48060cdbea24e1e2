package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"greenloop/internal/database"
	"greenloop/internal/docgen"
	"greenloop/internal/storage"
)

// DocumentRoutes serves the template-fill flow: the public template list,
// body preview, the submission protocol and the admin submission list.
type DocumentRoutes struct {
	server ServerInterface
}

func NewDocumentRoutes(server ServerInterface) *DocumentRoutes {
	return &DocumentRoutes{server: server}
}

func (dr *DocumentRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(dr.server)

	r.GET("/templates", dr.listTemplatesHandler)
	r.POST("/documents/:templateID/preview", dr.previewHandler)
	r.POST("/documents/:templateID/submit", dr.submitHandler)

	admin := r.Group("/admin/documents")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", dr.listSubmissionsHandler)
	}
}

// listTemplatesHandler returns the active templates the site's document form
// can offer, with their resolved field lists.
func (dr *DocumentRoutes) listTemplatesHandler(c *gin.Context) {
	rows, err := dr.server.GetModels().DocumentTemplates.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	templates := make([]gin.H, 0, len(rows))
	for i := range rows {
		t := rows[i].ToTemplate()
		templates = append(templates, gin.H{
			"id":     t.ID,
			"name":   t.Name,
			"type":   t.Type,
			"fields": t.FormFields(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

type previewRequest struct {
	Language   string            `json:"language"`
	Values     map[string]string `json:"values"`
	Checkboxes map[string]bool   `json:"checkboxes"`
}

// previewHandler substitutes the current answers into the template body
// without persisting anything. Unanswered fields stay visible as [name].
func (dr *DocumentRoutes) previewHandler(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	row, err := dr.server.GetModels().DocumentTemplates.Get(templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	tmpl := row.ToTemplate()
	values := docgen.MergeCheckboxValues(req.Values, req.Checkboxes, req.Language)
	body := docgen.Substitute(tmpl.Body(req.Language), values)

	c.JSON(http.StatusOK, gin.H{
		"body":     body,
		"language": req.Language,
		"fields":   tmpl.FormFields(),
	})
}

// submitHandler runs the submission protocol in order: insert the document
// record, upload the attached files under the new record's id, append the
// signature log when signed, fire the notification email, then render and
// store the PDF. Steps after the insert are not rolled back on failure.
func (dr *DocumentRoutes) submitHandler(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	row, err := dr.server.GetModels().DocumentTemplates.Get(templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	if !row.IsActive {
		c.JSON(http.StatusGone, gin.H{"error": "Template is no longer available"})
		return
	}
	tmpl := row.ToTemplate()

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	language := c.PostForm("language")
	if language == "" {
		language = "en"
	}

	values := map[string]string{}
	if raw := c.PostForm("values"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid values JSON"})
			return
		}
	}

	checkboxes := map[string]bool{}
	if raw := c.PostForm("checkboxes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &checkboxes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkboxes JSON"})
			return
		}
	}

	// Field requiredness only drives the form UI. An unanswered field keeps
	// its literal [name] marker in the document, and the submission goes
	// through regardless.

	// Signing is always optional; a rejected capture is a client error, an
	// absent one is a plain unsigned submission.
	var signature *docgen.SignatureCapture
	var signatureHash string
	if raw := c.PostForm("signature"); raw != "" {
		var capReq docgen.CaptureRequest
		if err := json.Unmarshal([]byte(raw), &capReq); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature JSON"})
			return
		}
		signature, err = docgen.Capture(capReq, time.Now().UTC())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		signatureHash, err = docgen.Hash(signature)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash signature"})
			return
		}
	}

	merged := docgen.MergeCheckboxValues(values, checkboxes, language)

	doc := &database.GeneratedDocument{
		TemplateID:   tmpl.ID.String(),
		TemplateName: tmpl.Name,
		Language:     language,
		FieldValues:  merged,
		IsSigned:     signature != nil,
	}
	if signature != nil {
		sigJSON, err := json.Marshal(signature)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode signature"})
			return
		}
		doc.SignatureData = sigJSON
		doc.SignatureHash = &signatureHash
	}

	ctx := c.Request.Context()
	db := dr.server.GetDB()
	logger := dr.server.GetLogger()

	if err := db.CreateGeneratedDocument(ctx, doc); err != nil {
		logger.Error("failed to create generated document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	fileNames := dr.uploadFieldFiles(c, tmpl, doc.ID)

	if signature != nil {
		entry := &database.SignatureLogEntry{
			DocumentID:    doc.ID,
			SignerName:    signature.SignerName,
			SignerEmail:   signature.SignerEmail,
			SignatureType: string(signature.Type),
			SignatureHash: signatureHash,
			SignedAt:      signature.Timestamp,
		}
		if err := db.AddSignatureLogEntry(ctx, entry); err != nil {
			logger.Error("failed to append signature log", zap.String("document", doc.ID), zap.Error(err))
		}
	}

	mail := dr.server.GetMailer()
	mail.Notify(ctx, "template submission", func(ctx context.Context) error {
		return mail.NotifyTemplateSubmission(ctx, tmpl.Name, doc.ID, doc.IsSigned)
	})

	pdfURL := dr.renderAndStorePDF(c, tmpl, doc, merged, checkboxes, fileNames, signature, signatureHash)

	c.JSON(http.StatusCreated, gin.H{
		"id":        doc.ID,
		"is_signed": doc.IsSigned,
		"files":     fileNames,
		"pdf_url":   pdfURL,
	})
}

// uploadFieldFiles stores the files attached to the template's file fields
// under the new document's id. Failures are logged and skipped; the
// submission record already exists and stays.
func (dr *DocumentRoutes) uploadFieldFiles(c *gin.Context, tmpl docgen.Template, docID string) []string {
	s3 := dr.server.GetS3Service()
	logger := dr.server.GetLogger()
	ctx := c.Request.Context()

	var fileNames []string
	for _, field := range tmpl.FormFields() {
		if field.Type != "file" {
			continue
		}
		for _, header := range c.Request.MultipartForm.File[field.Name] {
			file, err := header.Open()
			if err != nil {
				logger.Error("failed to open uploaded file",
					zap.String("field", field.Name), zap.Error(err))
				continue
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil || len(data) == 0 {
				logger.Error("failed to read uploaded file",
					zap.String("field", field.Name), zap.Error(err))
				continue
			}

			key := storage.ObjectKey(docID, field.Name, header.Filename)
			if _, err := s3.UploadDocument(ctx, key, data, header.Header.Get("Content-Type")); err != nil {
				logger.Error("document file upload failed",
					zap.String("field", field.Name),
					zap.String("file", header.Filename), zap.Error(err))
				continue
			}
			fileNames = append(fileNames, header.Filename)
		}
	}
	return fileNames
}

func (dr *DocumentRoutes) renderAndStorePDF(c *gin.Context, tmpl docgen.Template, doc *database.GeneratedDocument,
	values map[string]string, checkboxes map[string]bool, fileNames []string,
	signature *docgen.SignatureCapture, signatureHash string) string {

	logger := dr.server.GetLogger()

	pdfBytes, err := docgen.RenderPDF(docgen.RenderInput{
		Title:         tmpl.Name,
		Body:          docgen.Substitute(tmpl.Body(doc.Language), values),
		Fields:        tmpl.FormFields(),
		Values:        values,
		Checkboxes:    checkboxes,
		FileNames:     fileNames,
		Signature:     signature,
		SignatureHash: signatureHash,
	})
	if err != nil {
		logger.Error("failed to render PDF", zap.String("document", doc.ID), zap.Error(err))
		return ""
	}

	key := storage.ObjectKey(doc.ID, "document", tmpl.Name+".pdf")
	result, err := dr.server.GetS3Service().UploadDocument(c.Request.Context(), key, pdfBytes, "application/pdf")
	if err != nil {
		logger.Error("failed to store PDF", zap.String("document", doc.ID), zap.Error(err))
		return ""
	}
	return result.PublicURL
}

func (dr *DocumentRoutes) listSubmissionsHandler(c *gin.Context) {
	docs, err := dr.server.GetDB().GetGeneratedDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}
