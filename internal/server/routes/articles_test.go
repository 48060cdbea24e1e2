package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"greenloop/internal/models"
)

func TestUpdateArticleChangesSlug(t *testing.T) {
	srv := newTestServer(t)
	ar := NewArticleRoutes(srv)
	r := gin.New()
	r.PUT("/admin/articles/:articleID", ar.updateArticleHandler)

	article := &models.Article{
		Slug:  "old-plant-opening",
		Title: models.LocalizedText{"en": "Plant opening"},
		Body:  models.LocalizedText{"en": "We opened a plant."},
	}
	require.NoError(t, srv.models.Articles.Create(article))

	payload := `{"slug":"new-plant-opening","title":{"en":"Plant opening, revised"},"body":{"en":"We opened a plant."}}`
	req := httptest.NewRequest(http.MethodPut, "/admin/articles/"+article.ID.String(), strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated, err := srv.models.Articles.GetBySlug("new-plant-opening")
	require.NoError(t, err)
	require.Equal(t, article.ID, updated.ID)
	require.Equal(t, "Plant opening, revised", updated.Title["en"])

	_, err = srv.models.Articles.GetBySlug("old-plant-opening")
	require.Error(t, err)
}

func TestUpdateArticleUnknownID(t *testing.T) {
	srv := newTestServer(t)
	ar := NewArticleRoutes(srv)
	r := gin.New()
	r.PUT("/admin/articles/:articleID", ar.updateArticleHandler)

	payload := `{"slug":"whatever","title":{"en":"x"},"body":{"en":"y"}}`
	req := httptest.NewRequest(http.MethodPut, "/admin/articles/00000000-0000-0000-0000-000000000000", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
