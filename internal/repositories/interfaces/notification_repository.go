package interfaces

import (
	"context"

	"localdeals/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	ClearForUser(ctx context.Context, userID primitive.ObjectID) error
}
