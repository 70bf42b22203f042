package interfaces

import (
	"context"

	"localdeals/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error)
	List(ctx context.Context) ([]*models.Business, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
