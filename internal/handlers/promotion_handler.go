package handlers

import (
	"errors"
	"net/http"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromotionHandler struct {
	promotionService *services.PromotionService
}

func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

type createPromotionRequest struct {
	CampaignID  string  `json:"campaign_id"`
	ProductName string  `json:"product_name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	PriceBefore float64 `json:"price_before" binding:"required"`
	PriceNow    float64 `json:"price_now" binding:"required"`
	Quantity    string  `json:"quantity"`
	StockCount  int     `json:"stock_count"`
	ValidUntil  string  `json:"valid_until" binding:"required"`
	PhotoURL    string  `json:"photo_url"`
}

// CreatePromotion creates a deal for the authenticated merchant.
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var request createPromotionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	validUntil, err := time.Parse(time.RFC3339, request.ValidUntil)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid valid_until, expected RFC3339")
		return
	}

	input := &services.CreatePromotionInput{
		BusinessID:  businessID,
		ProductName: request.ProductName,
		Description: request.Description,
		Category:    request.Category,
		PriceBefore: request.PriceBefore,
		PriceNow:    request.PriceNow,
		Quantity:    models.QuantityKind(request.Quantity),
		StockCount:  request.StockCount,
		ValidUntil:  validUntil,
		PhotoURL:    request.PhotoURL,
	}

	if request.CampaignID != "" {
		campaignID, err := primitive.ObjectIDFromHex(request.CampaignID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid campaign ID")
			return
		}
		input.CampaignID = &campaignID
	}

	promotion, err := h.promotionService.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidPricing):
			utils.BadRequestResponse(c, "Promotional price must be positive and below the original price")
		case errors.Is(err, models.ErrInvalidCampaignRef):
			utils.BadRequestResponse(c, "Campaign does not exist or belongs to another business")
		case errors.Is(err, models.ErrDuplicateCode):
			utils.ErrorResponse(c, http.StatusConflict, "DUPLICATE_CODE", "Redemption code already in use")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "Promotion created successfully", promotion)
}

// ImportPromotions bulk-creates promotions from pre-parsed spreadsheet rows.
func (h *PromotionHandler) ImportPromotions(c *gin.Context) {
	var request struct {
		Rows []services.ImportRow `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	created, skipped, err := h.promotionService.BulkCreate(c.Request.Context(), businessID, request.Rows)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Import finished", gin.H{
		"created": created,
		"skipped": skipped,
	})
}

// GetPromotion returns a single promotion and registers a view.
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	promotionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID")
		return
	}

	promotion, err := h.promotionService.GetByID(c.Request.Context(), promotionID)
	if err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			utils.NotFoundResponse(c, "Promotion not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Promotion retrieved successfully", promotion)
}

// RegisterView bumps a promotion's view counter. Clients call it when a deal
// card is opened.
func (h *PromotionHandler) RegisterView(c *gin.Context) {
	promotionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.RegisterView(c.Request.Context(), promotionID); err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			utils.NotFoundResponse(c, "Promotion not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "View registered", nil)
}

// ListMyPromotions lists the authenticated merchant's promotions.
func (h *PromotionHandler) ListMyPromotions(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	promotions, err := h.promotionService.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Promotions retrieved successfully", promotions, &utils.Meta{
		Count: len(promotions),
	})
}

// UpdateStock replaces the remaining stock of a limited promotion.
func (h *PromotionHandler) UpdateStock(c *gin.Context) {
	promotionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID")
		return
	}

	var request struct {
		StockCount int `json:"stock_count"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	promotion, err := h.promotionService.SetStock(c.Request.Context(), promotionID, request.StockCount)
	if err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			utils.NotFoundResponse(c, "Promotion not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Stock updated successfully", promotion)
}

// UpdateStatus toggles a promotion between active and paused.
func (h *PromotionHandler) UpdateStatus(c *gin.Context) {
	promotionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID")
		return
	}

	var request struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	status := models.PromotionStatus(request.Status)
	if status != models.PromotionStatusActive && status != models.PromotionStatusPaused {
		utils.BadRequestResponse(c, "Status must be active or paused")
		return
	}

	promotion, err := h.promotionService.SetStatus(c.Request.Context(), promotionID, status)
	if err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			utils.NotFoundResponse(c, "Promotion not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Status updated successfully", promotion)
}

// ToggleFavorite saves or unsaves a promotion for the authenticated user.
func (h *PromotionHandler) ToggleFavorite(c *gin.Context) {
	promotionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	favorite, err := h.promotionService.ToggleFavorite(c.Request.Context(), userID, promotionID)
	if err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			utils.NotFoundResponse(c, "Promotion not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Favorite toggled successfully", gin.H{
		"favorite": favorite,
	})
}

// ListFavorites returns the authenticated user's saved promotions.
func (h *PromotionHandler) ListFavorites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	promotions, err := h.promotionService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Favorites retrieved successfully", promotions, &utils.Meta{
		Count: len(promotions),
	})
}
