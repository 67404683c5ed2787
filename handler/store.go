package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/service"
)

// StoreHandler serves the persisted documents: search history, leads,
// settings and business edits.
type StoreHandler struct {
	repo *service.Repository
}

func NewStoreHandler(repo *service.Repository) *StoreHandler {
	return &StoreHandler{repo: repo}
}

// storeError maps repository errors onto responses.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), "store operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type SaveSearchRequest struct {
	SearchID   string                   `json:"searchId"`
	Businesses []model.VerifiedBusiness `json:"businesses"`
}

// SaveSearch stores the results of one search.
func (h *StoreHandler) SaveSearch(c *gin.Context) {
	var req SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SearchID == "" || req.Businesses == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Businesses and searchId are required"})
		return
	}

	url, err := h.repo.SaveSearch(c.Request.Context(), req.SearchID, req.Businesses)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ListSearches returns the search history.
func (h *StoreHandler) ListSearches(c *gin.Context) {
	history, err := h.repo.ListSearches(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

type SaveLeadRequest struct {
	LeadData *model.Lead `json:"leadData"`
}

func (h *StoreHandler) SaveLead(c *gin.Context) {
	var req SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LeadData == nil || req.LeadData.BusinessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "leadData with businessId is required"})
		return
	}

	url, err := h.repo.SaveLead(c.Request.Context(), req.LeadData)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (h *StoreHandler) ListLeads(c *gin.Context) {
	leads, err := h.repo.ListLeads(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

func (h *StoreHandler) DeleteLead(c *gin.Context) {
	if err := h.repo.DeleteLead(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type SaveSettingsRequest struct {
	Settings *model.Settings `json:"settings"`
}

func (h *StoreHandler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Settings == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "settings are required"})
		return
	}

	url, err := h.repo.SaveSettings(c.Request.Context(), req.Settings)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// GetSettings returns the saved settings, or the defaults.
func (h *StoreHandler) GetSettings(c *gin.Context) {
	settings, err := h.repo.LoadSettings(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type SaveEditRequest struct {
	BusinessID string              `json:"businessId"`
	Edits      *model.BusinessEdit `json:"edits"`
}

func (h *StoreHandler) SaveEdit(c *gin.Context) {
	var req SaveEditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BusinessID == "" || req.Edits == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessId and edits are required"})
		return
	}
	req.Edits.BusinessID = req.BusinessID

	url, err := h.repo.SaveEdit(c.Request.Context(), req.Edits)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// GetEdit returns the edits for ?businessId=, or null.
func (h *StoreHandler) GetEdit(c *gin.Context) {
	businessID := c.Query("businessId")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessId is required"})
		return
	}

	edit, err := h.repo.GetEdit(c.Request.Context(), businessID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"edits": edit})
}
