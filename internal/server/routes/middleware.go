package routes

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenloop/internal/auth"
	"greenloop/internal/database"
	"greenloop/internal/mailer"
	"greenloop/internal/models"
	"greenloop/internal/realtime"
	"greenloop/internal/storage"
)

type ServerInterface interface {
	GetDB() database.Service
	GetModels() *models.DB
	GetS3Service() *storage.S3Service
	GetMailer() *mailer.Service
	GetEvents() *realtime.Service
	GetLogger() *zap.Logger
}

type Middleware struct {
	server ServerInterface
}

func NewMiddleware(server ServerInterface) *Middleware {
	return &Middleware{server: server}
}

// AuthMiddleware guards the admin console. A request passes when the session
// carries an authenticated email that is still on the admin allowlist.
func (m *Middleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		emailRaw := session.Get("email")

		if emailRaw == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		email, ok := emailRaw.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid session data"})
			return
		}

		if !auth.AllowedAdmin(email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not an admin account"})
			return
		}

		c.Set("admin_email", email)
		c.Next()
	}
}
