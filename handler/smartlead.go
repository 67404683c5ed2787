package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/service"
)

// Smartlead actions.
const (
	actionTest        = "test"
	actionSend        = "send"
	actionGetCampaign = "getCampaign"
)

type SmartleadHandler struct {
	smartlead         *service.SmartleadService
	repo              *service.Repository
	defaultCampaignID string
}

func NewSmartleadHandler(smartlead *service.SmartleadService, repo *service.Repository, defaultCampaignID string) *SmartleadHandler {
	return &SmartleadHandler{smartlead: smartlead, repo: repo, defaultCampaignID: defaultCampaignID}
}

type SmartleadRequest struct {
	Action     string                `json:"action"`
	CampaignID string                `json:"campaignId"`
	BusinessID string                `json:"businessId"`
	Lead       *service.LeadInput    `json:"lead"`
	Email      *model.GeneratedEmail `json:"email"`
}

// Handle dispatches one Smartlead action.
func (h *SmartleadHandler) Handle(c *gin.Context) {
	var req SmartleadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !h.smartlead.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Smartlead API key not configured. Please add SMARTLEAD_API_KEY to your environment variables.",
		})
		return
	}

	ctx := c.Request.Context()
	campaignID := req.CampaignID
	if campaignID == "" {
		campaignID = h.defaultCampaignID
	}

	switch req.Action {
	case actionTest:
		data, err := h.smartlead.TestConnection(ctx)
		if err != nil {
			h.fail(c, err, "Failed to connect to Smartlead API", true)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Successfully connected to Smartlead API",
			"campaigns": data,
		})

	case actionSend:
		var lead service.LeadInput
		if req.Lead != nil {
			lead = *req.Lead
		}
		data, err := h.smartlead.AddLead(ctx, campaignID, lead, req.Email)
		if err != nil {
			h.fail(c, err, "Failed to add lead to Smartlead campaign", true)
			return
		}
		if req.BusinessID != "" {
			if err := h.repo.MarkLeadSent(ctx, req.BusinessID, campaignID, req.Email); err != nil {
				logger.Warn(ctx, "failed to mark lead sent", "business_id", req.BusinessID, "error", err)
			}
		}
		logger.Info(ctx, "lead pushed to campaign", "campaign_id", campaignID, "business_id", req.BusinessID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Email sent to " + lead.Email + " via Smartlead campaign",
			"data":    data,
		})

	case actionGetCampaign:
		data, err := h.smartlead.GetCampaign(ctx, campaignID)
		if err != nil {
			h.fail(c, err, "Failed to fetch campaign details", false)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "campaign": data})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid action. Use "test", "send", or "getCampaign"`})
	}
}

// fail maps a Smartlead error onto a response. planHint adds the PRO plan
// explanation to a 403.
func (h *SmartleadHandler) fail(c *gin.Context, err error, message string, planHint bool) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrCampaignRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign ID is required. Please configure it in Settings."})
		return
	case errors.Is(err, service.ErrLeadEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lead email is required"})
		return
	}

	var upErr *service.UpstreamError
	if !errors.As(err, &upErr) {
		logger.Error(ctx, "smartlead request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Network error contacting Smartlead", "details": err.Error()})
		return
	}

	logger.Warn(ctx, "smartlead rejected request", "op", upErr.Op, "status", upErr.StatusCode)
	if planHint && upErr.StatusCode == http.StatusForbidden {
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "API Access Denied - PRO Plan Required",
			"message":  "Smartlead API requires a PRO plan for API access.",
			"solution": "Activate the API in Smartlead settings, upgrading to a PRO plan if it is not available.",
			"status":   upErr.StatusCode,
			"details":  upErr.Snippet,
		})
		return
	}

	status := upErr.StatusCode
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": upErr.Snippet,
		"status":  upErr.StatusCode,
	})
}
