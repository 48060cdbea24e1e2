package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenloop/internal/leads"
	"greenloop/internal/realtime"
)

// PublicRoutes carries the marketing-site endpoints: the contact form and
// the marketplace registration form. Both write a lead source row, publish a
// table-change signal and fire a best-effort confirmation email.
type PublicRoutes struct {
	server ServerInterface
}

func NewPublicRoutes(server ServerInterface) *PublicRoutes {
	return &PublicRoutes{server: server}
}

func (pr *PublicRoutes) RegisterRoutes(r *gin.Engine) {
	r.POST("/contact", pr.contactHandler)
	r.POST("/marketplace/register", pr.marketplaceHandler)
}

type contactRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   string  `json:"email" binding:"required,email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Country *string `json:"country"`
	Message *string `json:"message"`
	Channel *string `json:"channel"`
}

func (pr *PublicRoutes) contactHandler(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := &leads.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Country: req.Country,
		Message: req.Message,
		Channel: req.Channel,
	}

	db := pr.server.GetDB()
	if err := db.CreateContact(c.Request.Context(), contact); err != nil {
		pr.server.GetLogger().Error("failed to create contact", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	pr.server.GetEvents().Publish(c.Request.Context(), realtime.TableContacts)

	mail := pr.server.GetMailer()
	mail.Notify(c.Request.Context(), "contact confirmation", func(ctx context.Context) error {
		return mail.SendReplyEmail(ctx, contact.Email,
			"We received your message",
			"Thank you for contacting us, "+contact.Name+". Our team will get back to you shortly.")
	})

	c.JSON(http.StatusCreated, gin.H{"id": contact.ID, "message": "Submission received"})
}

type marketplaceRequest struct {
	Name             string   `json:"name" binding:"required,min=1,max=255"`
	Email            string   `json:"email" binding:"required,email"`
	Company          *string  `json:"company"`
	Phone            *string  `json:"phone"`
	Country          *string  `json:"country"`
	Message          *string  `json:"message"`
	CompanyType      *string  `json:"company_type"`
	ProductsInterest []string `json:"products_interest"`
	EstimatedVolume  *string  `json:"estimated_volume"`
}

func (pr *PublicRoutes) marketplaceHandler(c *gin.Context) {
	var req marketplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg := &leads.MarketplaceRegistration{
		Name:             req.Name,
		Email:            req.Email,
		Company:          req.Company,
		Phone:            req.Phone,
		Country:          req.Country,
		Message:          req.Message,
		CompanyType:      req.CompanyType,
		ProductsInterest: req.ProductsInterest,
		EstimatedVolume:  req.EstimatedVolume,
	}

	db := pr.server.GetDB()
	if err := db.CreateMarketplaceRegistration(c.Request.Context(), reg); err != nil {
		pr.server.GetLogger().Error("failed to create marketplace registration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save registration"})
		return
	}

	pr.server.GetEvents().Publish(c.Request.Context(), realtime.TableMarketplace)

	mail := pr.server.GetMailer()
	mail.Notify(c.Request.Context(), "marketplace confirmation", func(ctx context.Context) error {
		return mail.SendMarketplaceConfirmation(ctx, reg.Email, reg.Name)
	})

	c.JSON(http.StatusCreated, gin.H{"id": reg.ID, "message": "Registration received"})
}
