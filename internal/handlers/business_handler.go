package handlers

import (
	"errors"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
	}
}

// RegisterBusiness registers a merchant. When no coordinates are supplied
// the address is geocoded best effort.
func (h *BusinessHandler) RegisterBusiness(c *gin.Context) {
	var request services.RegisterBusinessInput
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if request.Name == "" || request.Category == "" {
		utils.BadRequestResponse(c, "Name and category are required")
		return
	}

	business, err := h.businessService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Business registered successfully", business)
}

// GetBusiness returns a business profile.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid business ID")
		return
	}

	business, err := h.businessService.GetByID(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, models.ErrBusinessNotFound) {
			utils.NotFoundResponse(c, "Business not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Business retrieved successfully", business)
}

// ListBusinesses lists registered businesses, paginated.
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	businesses, err := h.businessService.List(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	total := int64(len(businesses))
	start := params.GetSkip()
	if start > len(businesses) {
		start = len(businesses)
	}
	end := start + params.GetLimit()
	if end > len(businesses) {
		end = len(businesses)
	}
	page := businesses[start:end]

	utils.SuccessResponseWithMeta(c, "Businesses retrieved successfully", page, &utils.Meta{
		Pagination: utils.BuildPaginationMeta(params, total),
		Count:      len(page),
	})
}

// ListBusinessReviews returns the reviews left on a business, newest first.
func (h *BusinessHandler) ListBusinessReviews(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid business ID")
		return
	}

	reviews, err := h.businessService.ListReviews(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, models.ErrBusinessNotFound) {
			utils.NotFoundResponse(c, "Business not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}

	utils.SuccessResponse(c, "Reviews retrieved successfully", reviews)
}

// UpdateBusiness applies a partial update to the merchant's profile.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid business ID")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	// Protected fields are never writable through this endpoint.
	delete(updates, "_id")
	delete(updates, "verified")
	delete(updates, "plan_type")

	if err := h.businessService.Update(c.Request.Context(), businessID, updates); err != nil {
		if errors.Is(err, models.ErrBusinessNotFound) {
			utils.NotFoundResponse(c, "Business not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Business updated successfully", nil)
}

// VerifyBusiness marks a business as verified (admin only).
func (h *BusinessHandler) VerifyBusiness(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid business ID")
		return
	}

	if err := h.businessService.Verify(c.Request.Context(), businessID); err != nil {
		if errors.Is(err, models.ErrBusinessNotFound) {
			utils.NotFoundResponse(c, "Business not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Business verified successfully", nil)
}

// DeleteBusiness removes a business with its promotions and reviews (admin only).
func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
	businessID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid business ID")
		return
	}

	if err := h.businessService.Delete(c.Request.Context(), businessID); err != nil {
		if errors.Is(err, models.ErrBusinessNotFound) {
			utils.NotFoundResponse(c, "Business not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Business deleted successfully", nil)
}
