package handlers

import (
	"errors"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

type createCampaignRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CreateCampaign creates a draft campaign for the authenticated merchant.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var request createCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	input := &services.CreateCampaignInput{
		BusinessID:  businessID,
		Title:       request.Title,
		Description: request.Description,
	}

	if request.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, request.StartDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date, expected RFC3339")
			return
		}
		input.StartDate = startDate
	}
	if request.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, request.EndDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end_date, expected RFC3339")
			return
		}
		input.EndDate = endDate
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), input)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Campaign created successfully", campaign)
}

// ListMyCampaigns lists the authenticated merchant's campaigns.
func (h *CampaignHandler) ListMyCampaigns(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Campaigns retrieved successfully", campaigns, &utils.Meta{
		Count: len(campaigns),
	})
}

// GetCampaign returns a campaign with its member promotions.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			utils.NotFoundResponse(c, "Campaign not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	products, err := h.campaignService.GetProducts(c.Request.Context(), campaignID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Campaign retrieved successfully", gin.H{
		"campaign": campaign,
		"products": products,
	})
}

// UpdateCampaign rewrites a campaign's editable fields.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	var request createCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	campaign, err := h.campaignService.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			utils.NotFoundResponse(c, "Campaign not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	campaign.Title = request.Title
	campaign.Description = request.Description
	if request.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, request.StartDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date, expected RFC3339")
			return
		}
		campaign.StartDate = startDate
	}
	if request.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, request.EndDate)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end_date, expected RFC3339")
			return
		}
		campaign.EndDate = endDate
	}

	if err := h.campaignService.Update(c.Request.Context(), campaign); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Campaign updated successfully", campaign)
}

// UpdateCampaignStatus moves a campaign through its lifecycle.
func (h *CampaignHandler) UpdateCampaignStatus(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	var request struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	status := models.CampaignStatus(request.Status)
	switch status {
	case models.CampaignStatusDraft, models.CampaignStatusActive, models.CampaignStatusPaused, models.CampaignStatusEnded:
	default:
		utils.BadRequestResponse(c, "Invalid campaign status")
		return
	}

	campaign, err := h.campaignService.SetStatus(c.Request.Context(), campaignID, status)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			utils.NotFoundResponse(c, "Campaign not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Campaign status updated successfully", campaign)
}

// DuplicateCampaign clones a campaign as a fresh draft with no products.
func (h *CampaignHandler) DuplicateCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	clone, err := h.campaignService.Duplicate(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			utils.NotFoundResponse(c, "Campaign not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Campaign duplicated successfully", clone)
}

// SetCampaignProducts replaces the campaign's full membership set.
func (h *CampaignHandler) SetCampaignProducts(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var request struct {
		PromotionIDs []string `json:"promotion_ids"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	promotionIDs := make([]primitive.ObjectID, 0, len(request.PromotionIDs))
	for _, raw := range request.PromotionIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid promotion ID: "+raw)
			return
		}
		promotionIDs = append(promotionIDs, id)
	}

	err = h.campaignService.SetProducts(c.Request.Context(), businessID, campaignID, promotionIDs)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCampaignNotFound):
			utils.NotFoundResponse(c, "Campaign not found")
		case errors.Is(err, models.ErrInvalidCampaignRef):
			utils.BadRequestResponse(c, "All promotions must belong to the campaign's business")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Campaign products updated successfully", nil)
}
