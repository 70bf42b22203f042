package services

import (
	"context"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	notifications interfaces.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications interfaces.NotificationRepository, log *logger.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        log,
	}
}

type SendNotificationInput struct {
	UserID      primitive.ObjectID  `json:"user_id"`
	BusinessID  primitive.ObjectID  `json:"business_id"`
	PromotionID *primitive.ObjectID `json:"promotion_id,omitempty"`
	Title       string              `json:"title"`
	Body        string              `json:"body"`
}

func (s *NotificationService) Send(ctx context.Context, input *SendNotificationInput) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:      input.UserID,
		BusinessID:  input.BusinessID,
		PromotionID: input.PromotionID,
		Title:       input.Title,
		Body:        input.Body,
		SentAt:      time.Now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) ClearForUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.notifications.ClearForUser(ctx, userID)
}
