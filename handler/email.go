package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/service"
)

type EmailHandler struct {
	emails *service.EmailService
	repo   *service.Repository
}

func NewEmailHandler(emails *service.EmailService, repo *service.Repository) *EmailHandler {
	return &EmailHandler{emails: emails, repo: repo}
}

type GenerateEmailRequest struct {
	Business     *model.VerifiedBusiness `json:"business"`
	CustomPrompt string                  `json:"customPrompt"`
	Style        string                  `json:"style"`
}

// Generate writes an outreach email for one business. When the business
// carries an id the email is also recorded on its lead.
func (h *EmailHandler) Generate(c *gin.Context) {
	var req GenerateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Business == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business data is required"})
		return
	}
	ctx := c.Request.Context()

	email, err := h.emails.Generate(ctx, req.Business.BusinessCandidate, req.CustomPrompt, req.Style)
	if err != nil {
		var upErr *service.UpstreamError
		switch {
		case errors.Is(err, service.ErrUnknownStyle):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrParseEmail):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse email data"})
		case errors.As(err, &upErr):
			logger.Error(ctx, "email generation failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate email"})
		default:
			logger.Error(ctx, "email generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if req.Business.ID != "" {
		if err := h.repo.RecordEmail(ctx, req.Business, email); err != nil {
			logger.Warn(ctx, "failed to record email on lead", "business_id", req.Business.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"email": email})
}
