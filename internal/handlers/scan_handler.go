package handlers

import (
	"net/http"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	redemptionService *services.RedemptionService
}

func NewScanHandler(redemptionService *services.RedemptionService) *ScanHandler {
	return &ScanHandler{
		redemptionService: redemptionService,
	}
}

type scanRequest struct {
	Code string `json:"code" binding:"required"`
}

// Scan validates a redemption code at the point of sale. Rejections carry the
// structured result in the response body so the POS can show the exact
// message: 404 for an unknown code, 410 for an expired offer, 409 when the
// stock is gone.
func (h *ScanHandler) Scan(c *gin.Context) {
	var request scanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.redemptionService.Redeem(c.Request.Context(), request.Code)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	if result.Success {
		utils.SuccessResponse(c, result.Message, result)
		return
	}

	switch result.Failure {
	case models.RedemptionFailureNotFound:
		utils.ErrorResponseWithData(c, http.StatusNotFound, "CODE_NOT_FOUND", result.Message, result)
	case models.RedemptionFailureExpired:
		utils.ErrorResponseWithData(c, http.StatusGone, "PROMOTION_EXPIRED", result.Message, result)
	case models.RedemptionFailureOutOfStock:
		utils.ErrorResponseWithData(c, http.StatusConflict, "OUT_OF_STOCK", result.Message, result)
	default:
		utils.InternalServerErrorResponse(c)
	}
}
