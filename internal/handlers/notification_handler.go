package handlers

import (
	"errors"

	"localdeals/internal/models"
	"localdeals/internal/services"
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

type sendNotificationRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	PromotionID string `json:"promotion_id"`
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// SendNotification lets a merchant push an in-app notification to a user,
// optionally tied to one of its promotions.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var request sendNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	userID, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	input := &services.SendNotificationInput{
		UserID:     userID,
		BusinessID: businessID,
		Title:      request.Title,
		Body:       request.Body,
	}
	if request.PromotionID != "" {
		promotionID, err := primitive.ObjectIDFromHex(request.PromotionID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid promotion ID")
			return
		}
		input.PromotionID = &promotionID
	}

	notification, err := h.notificationService.Send(c.Request.Context(), input)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Notification sent", notification)
}

// ListNotifications returns the authenticated user's notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Notifications retrieved successfully", notifications, &utils.Meta{
		Count: len(notifications),
	})
}

// MarkNotificationRead flags a notification as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID); err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			utils.NotFoundResponse(c, "Notification not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}

// ClearNotifications removes all of the authenticated user's notifications.
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.notificationService.ClearForUser(c.Request.Context(), userID); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Notifications cleared", nil)
}
