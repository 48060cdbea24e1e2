package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestDownloadUnknownLeadDocument(t *testing.T) {
	srv := newTestServer(t)
	lr := NewLeadRoutes(srv)
	r := gin.New()
	r.GET("/admin/leads/documents/:docID/download", lr.downloadDocumentHandler)

	req := httptest.NewRequest(http.MethodGet,
		"/admin/leads/documents/00000000-0000-0000-0000-000000000000/download", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyUnknownLeadDocument(t *testing.T) {
	srv := newTestServer(t)
	lr := NewLeadRoutes(srv)
	r := gin.New()
	r.GET("/admin/leads/documents/:docID/verify", lr.verifyDocumentHandler)

	req := httptest.NewRequest(http.MethodGet,
		"/admin/leads/documents/00000000-0000-0000-0000-000000000000/verify", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
