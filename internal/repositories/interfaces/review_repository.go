package interfaces

import (
	"context"

	"localdeals/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Review, error)
	DeleteByBusiness(ctx context.Context, businessID primitive.ObjectID) error
}
