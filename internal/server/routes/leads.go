package routes

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenloop/internal/database"
	"greenloop/internal/leads"
	"greenloop/internal/realtime"
	"greenloop/internal/storage"
)

// LeadRoutes serves the admin lead console: the unified pipeline view and
// the per-lead mutations, notes and document folder.
type LeadRoutes struct {
	server ServerInterface
}

func NewLeadRoutes(server ServerInterface) *LeadRoutes {
	return &LeadRoutes{server: server}
}

func (lr *LeadRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(lr.server)

	admin := r.Group("/admin/leads")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", lr.listLeadsHandler)
		admin.PATCH("/:type/:id/stage", lr.updateStageHandler)
		admin.PATCH("/:type/:id/priority", lr.updatePriorityHandler)
		admin.PATCH("/:type/:id/follow-up", lr.updateFollowUpHandler)
		admin.GET("/:type/:id/notes", lr.listNotesHandler)
		admin.POST("/:type/:id/notes", lr.addNoteHandler)
		admin.GET("/:type/:id/documents", lr.listDocumentsHandler)
		admin.POST("/:type/:id/documents", lr.uploadDocumentsHandler)
		admin.GET("/documents/:docID/download", lr.downloadDocumentHandler)
		admin.GET("/documents/:docID/verify", lr.verifyDocumentHandler)
		admin.DELETE("/documents/:docID", lr.deleteDocumentHandler)
		admin.GET("/events", lr.streamChangesHandler)
	}
}

func leadTypeParam(c *gin.Context) (leads.LeadType, bool) {
	t := leads.LeadType(c.Param("type"))
	switch t {
	case leads.TypeContact, leads.TypeMarketplace, leads.TypeOTR:
		return t, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead type"})
	return "", false
}

// listLeadsHandler builds the console's whole data set in one response:
// the filtered lead list, the pipeline grouping and the stats header. A
// source that fails to load is treated as empty so the merge still renders.
func (lr *LeadRoutes) listLeadsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	db := lr.server.GetDB()
	logger := lr.server.GetLogger()

	contacts, err := db.GetContacts(ctx)
	if err != nil {
		logger.Error("failed to load contacts", zap.Error(err))
		contacts = nil
	}

	registrations, err := db.GetMarketplaceRegistrations(ctx)
	if err != nil {
		logger.Error("failed to load marketplace registrations", zap.Error(err))
		registrations = nil
	}

	all := leads.Unify(contacts, registrations)
	now := time.Now()

	filters := leads.Filters{
		Search:   c.Query("search"),
		Type:     leads.LeadType(c.Query("type")),
		Priority: leads.Priority(c.Query("priority")),
		Reminder: c.Query("reminder"),
	}
	filtered := filters.Apply(all, now)

	c.JSON(http.StatusOK, gin.H{
		"leads":    filtered,
		"pipeline": leads.GroupByStage(filtered),
		"stats":    leads.ComputeStats(all, now),
		"total":    len(filtered),
	})
}

func (lr *LeadRoutes) updateStageHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	var req struct {
		LeadLevel leads.LeadLevel `json:"lead_level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.LeadLevel {
	case leads.LevelInitial, leads.LevelQualified, leads.LevelProject:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead level"})
		return
	}

	db := lr.server.GetDB()
	if err := db.UpdateLeadStage(c.Request.Context(), leadType, c.Param("id"), req.LeadLevel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	lr.publishChange(c, leadType)
	c.JSON(http.StatusOK, gin.H{"message": "Stage updated"})
}

func (lr *LeadRoutes) updatePriorityHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	var req struct {
		Priority leads.Priority `json:"priority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Priority {
	case leads.PriorityLow, leads.PriorityMedium, leads.PriorityHigh, leads.PriorityUrgent:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	db := lr.server.GetDB()
	if err := db.UpdateLeadPriority(c.Request.Context(), leadType, c.Param("id"), req.Priority); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	lr.publishChange(c, leadType)
	c.JSON(http.StatusOK, gin.H{"message": "Priority updated"})
}

func (lr *LeadRoutes) updateFollowUpHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	// Both fields nullable: clearing a follow-up is a valid update.
	var req struct {
		NextAction     *string    `json:"next_action"`
		NextActionDate *time.Time `json:"next_action_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := lr.server.GetDB()
	err := db.UpdateLeadFollowUp(c.Request.Context(), leadType, c.Param("id"), req.NextAction, req.NextActionDate)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	lr.publishChange(c, leadType)
	c.JSON(http.StatusOK, gin.H{"message": "Follow-up updated"})
}

func (lr *LeadRoutes) publishChange(c *gin.Context, leadType leads.LeadType) {
	table := realtime.TableContacts
	if leadType == leads.TypeMarketplace {
		table = realtime.TableMarketplace
	}
	lr.server.GetEvents().Publish(c.Request.Context(), table)
}

func (lr *LeadRoutes) listNotesHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	db := lr.server.GetDB()
	notes, err := db.GetLeadNotes(c.Request.Context(), leadType, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": len(notes)})
}

func (lr *LeadRoutes) addNoteHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := &database.LeadNote{
		LeadType: leadType,
		LeadID:   c.Param("id"),
		Author:   c.MustGet("admin_email").(string),
		Note:     req.Note,
	}

	db := lr.server.GetDB()
	if err := db.AddLeadNote(c.Request.Context(), note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (lr *LeadRoutes) listDocumentsHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}

	db := lr.server.GetDB()
	docs, err := db.GetLeadDocuments(c.Request.Context(), leadType, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// uploadDocumentsHandler stores each file of the multipart form in the lead's
// folder, one at a time. A failed file is reported and skipped; the ones that
// succeeded stay uploaded.
func (lr *LeadRoutes) uploadDocumentsHandler(c *gin.Context) {
	leadType, ok := leadTypeParam(c)
	if !ok {
		return
	}
	leadID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one file is required"})
		return
	}

	ctx := c.Request.Context()
	db := lr.server.GetDB()
	s3 := lr.server.GetS3Service()
	logger := lr.server.GetLogger()

	var uploaded []database.LeadDocument
	var failed []string

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			failed = append(failed, header.Filename)
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil || len(data) == 0 {
			failed = append(failed, header.Filename)
			continue
		}

		key := storage.ObjectKey(string(leadType)+"-"+leadID, "", header.Filename)
		result, err := s3.UploadDocument(ctx, key, data, header.Header.Get("Content-Type"))
		if err != nil {
			logger.Error("lead document upload failed",
				zap.String("file", header.Filename), zap.Error(err))
			failed = append(failed, header.Filename)
			continue
		}

		doc := &database.LeadDocument{
			LeadType:    leadType,
			LeadID:      leadID,
			FileName:    header.Filename,
			StoragePath: result.Key,
			PublicURL:   result.PublicURL,
			FileSize:    result.FileSize,
			ContentType: result.MimeType,
			FileHash:    result.FileHash,
		}
		if err := db.CreateLeadDocument(ctx, doc); err != nil {
			logger.Error("lead document record failed",
				zap.String("file", header.Filename), zap.Error(err))
			failed = append(failed, header.Filename)
			continue
		}

		uploaded = append(uploaded, *doc)
	}

	status := http.StatusCreated
	if len(uploaded) == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"documents": uploaded, "failed": failed})
}

// downloadDocumentHandler hands out a short-lived presigned URL so the
// console can fetch a document without the bucket being public.
func (lr *LeadRoutes) downloadDocumentHandler(c *gin.Context) {
	doc, err := lr.server.GetDB().GetLeadDocument(c.Request.Context(), c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	url, err := lr.server.GetS3Service().GeneratePresignedURL(c.Request.Context(), doc.StoragePath, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "file_name": doc.FileName})
}

// verifyDocumentHandler re-downloads a stored document and checks the bytes
// against the hash recorded at upload time.
func (lr *LeadRoutes) verifyDocumentHandler(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := lr.server.GetDB().GetLeadDocument(ctx, c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	s3 := lr.server.GetS3Service()
	exists, err := s3.CheckFileExists(ctx, doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach storage"})
		return
	}
	if !exists {
		c.JSON(http.StatusGone, gin.H{"error": "Stored object is missing"})
		return
	}

	data, _, err := s3.DownloadFile(ctx, doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to download stored object"})
		return
	}

	if err := s3.ValidateFileIntegrity(data, doc.FileHash); err != nil {
		c.JSON(http.StatusConflict, gin.H{"verified": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true, "file_hash": doc.FileHash})
}

// streamChangesHandler streams table-change signals to the console as
// server-sent events so it can refetch the lead list when a source changes.
func (lr *LeadRoutes) streamChangesHandler(c *gin.Context) {
	events := lr.server.GetEvents()
	ch := events.Watch()
	defer events.Unwatch(ch)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case table, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", table)
			return true
		}
	})
}

func (lr *LeadRoutes) deleteDocumentHandler(c *gin.Context) {
	db := lr.server.GetDB()
	doc, err := db.DeleteLeadDocument(c.Request.Context(), c.Param("docID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	// The record is gone either way; a leftover object is only wasted space.
	if err := lr.server.GetS3Service().DeleteFile(c.Request.Context(), doc.StoragePath); err != nil {
		lr.server.GetLogger().Warn("failed to delete stored object",
			zap.String("key", doc.StoragePath), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
