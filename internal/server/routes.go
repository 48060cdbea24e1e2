package server

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"greenloop/internal/auth"
	"greenloop/internal/server/routes"
)

func (s *Server) RegisterRoutes() http.Handler {
	// Initialize Goth providers
	auth.InitGothProviders()

	r := gin.Default()

	// Set up sessions
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions("greenloop-session", store))

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)

	// OAuth routes for the admin console
	r.GET("/auth/:provider", s.authHandler)
	r.GET("/auth/:provider/callback", s.authCallbackHandler)
	r.GET("/logout", s.logoutHandler)
	r.GET("/me", s.meHandler)

	routes.NewPublicRoutes(s).RegisterRoutes(r)
	routes.NewLeadRoutes(s).RegisterRoutes(r)
	routes.NewDocumentRoutes(s).RegisterRoutes(r)
	routes.NewTemplateRoutes(s).RegisterRoutes(r)
	routes.NewArticleRoutes(s).RegisterRoutes(r)
	routes.NewLOIRoutes(s).RegisterRoutes(r)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.Health())
}

func (s *Server) authHandler(c *gin.Context) {
	provider := c.Param("provider")

	// Create a new request with the correct path for gothic
	req := c.Request.Clone(c.Request.Context())
	req.URL.Path = "/auth/" + provider

	// Add the provider to the URL query params (gothic expects this)
	q := req.URL.Query()
	q.Add("provider", provider)
	req.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, req)
}

func (s *Server) authCallbackHandler(c *gin.Context) {
	provider := c.Param("provider")

	// Create a new request with the correct path for gothic
	req := c.Request.Clone(c.Request.Context())
	req.URL.Path = "/auth/" + provider + "/callback"

	// Add the provider to the URL query params
	q := req.URL.Query()
	q.Add("provider", provider)
	req.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only allowlisted admins get a console session
	if !auth.AllowedAdmin(gothUser.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not an admin account"})
		return
	}

	session := sessions.Default(c)
	session.Set("email", gothUser.Email)
	session.Set("name", gothUser.Name)
	session.Save()

	redirectURL := os.Getenv("FRONTEND_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:3000"
	}

	c.Redirect(http.StatusTemporaryRedirect, redirectURL+"/admin")
}

func (s *Server) logoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) meHandler(c *gin.Context) {
	session := sessions.Default(c)
	email := session.Get("email")

	if email == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "authenticated": true})
}
