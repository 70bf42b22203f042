package interfaces

import (
	"context"

	"localdeals/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error
}
