package handlers

import (
	"strconv"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	discoveryService *services.DiscoveryService
}

func NewFeedHandler(discoveryService *services.DiscoveryService) *FeedHandler {
	return &FeedHandler{
		discoveryService: discoveryService,
	}
}

// GetFeed returns the ranked deal feed around the consumer.
// Query parameters: lat, lng, radius_km, category, search, sort.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	query := &services.FeedQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Sort:     services.FeedSort(c.DefaultQuery("sort", string(services.FeedSortDistance))),
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			utils.BadRequestResponse(c, "Invalid coordinates")
			return
		}
		query.Location = &services.Coordinates{Latitude: lat, Longitude: lng}
	}

	if radiusStr := c.Query("radius_km"); radiusStr != "" {
		radiusKM, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radiusKM <= 0 {
			utils.BadRequestResponse(c, "Invalid radius")
			return
		}
		if radiusKM > utils.MaxFeedRadiusKM {
			radiusKM = utils.MaxFeedRadiusKM
		}
		query.RadiusMeters = utils.KilometersToMeters(radiusKM)
	}

	items, err := h.discoveryService.Feed(c.Request.Context(), query)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Feed retrieved successfully", items, &utils.Meta{
		Count: len(items),
	})
}

// GetCategories returns the fixed category catalog clients filter by.
func (h *FeedHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, "Categories retrieved successfully", models.Categories)
}
