package routes

import (
	"localdeals/internal/handlers"
	"localdeals/internal/middleware"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Feed         *handlers.FeedHandler
	Scan         *handlers.ScanHandler
	Promotion    *handlers.PromotionHandler
	Campaign     *handlers.CampaignHandler
	Business     *handlers.BusinessHandler
	Notification *handlers.NotificationHandler
}

// Setup mounts the HTTP surface on the given engine.
func Setup(router *gin.Engine, h *Handlers, jwtSecret string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": utils.AppName})
	})

	v1 := router.Group("/api/v1")

	// Public consumer surface
	v1.GET("/feed", h.Feed.GetFeed)
	v1.GET("/categories", h.Feed.GetCategories)
	v1.GET("/businesses", h.Business.ListBusinesses)
	v1.GET("/businesses/:id", h.Business.GetBusiness)
	v1.GET("/businesses/:id/reviews", h.Business.ListBusinessReviews)
	v1.GET("/promotions/:id", h.Promotion.GetPromotion)
	v1.POST("/promotions/:id/view", h.Promotion.RegisterView)
	v1.POST("/businesses", h.Business.RegisterBusiness)

	auth := v1.Group("")
	auth.Use(middleware.AuthRequired(jwtSecret))

	// Point of sale
	auth.POST("/scan", middleware.RoleRequired(utils.RoleBusiness, utils.RoleAdmin), h.Scan.Scan)

	// Consumer
	auth.POST("/promotions/:id/favorite", h.Promotion.ToggleFavorite)
	auth.GET("/favorites", h.Promotion.ListFavorites)
	auth.GET("/notifications", h.Notification.ListNotifications)
	auth.PUT("/notifications/:id/read", h.Notification.MarkNotificationRead)
	auth.DELETE("/notifications", h.Notification.ClearNotifications)

	// Merchant
	merchant := auth.Group("")
	merchant.Use(middleware.RoleRequired(utils.RoleBusiness, utils.RoleAdmin))
	merchant.POST("/promotions", h.Promotion.CreatePromotion)
	merchant.POST("/promotions/bulk", h.Promotion.ImportPromotions)
	merchant.GET("/promotions", h.Promotion.ListMyPromotions)
	merchant.PUT("/promotions/:id/stock", h.Promotion.UpdateStock)
	merchant.PUT("/promotions/:id/status", h.Promotion.UpdateStatus)
	merchant.POST("/campaigns", h.Campaign.CreateCampaign)
	merchant.GET("/campaigns", h.Campaign.ListMyCampaigns)
	merchant.GET("/campaigns/:id", h.Campaign.GetCampaign)
	merchant.PUT("/campaigns/:id", h.Campaign.UpdateCampaign)
	merchant.PUT("/campaigns/:id/status", h.Campaign.UpdateCampaignStatus)
	merchant.POST("/campaigns/:id/duplicate", h.Campaign.DuplicateCampaign)
	merchant.PUT("/campaigns/:id/products", h.Campaign.SetCampaignProducts)
	merchant.PUT("/businesses/:id", h.Business.UpdateBusiness)
	merchant.POST("/notifications", h.Notification.SendNotification)

	// Admin
	admin := auth.Group("")
	admin.Use(middleware.RoleRequired(utils.RoleAdmin))
	admin.PUT("/businesses/:id/verify", h.Business.VerifyBusiness)
	admin.DELETE("/businesses/:id", h.Business.DeleteBusiness)
}
