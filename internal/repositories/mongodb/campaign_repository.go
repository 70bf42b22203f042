package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type campaignRepository struct {
	collection *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) interfaces.CampaignRepository {
	return &campaignRepository{
		collection: db.Collection("campaigns"),
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now()
	}
	campaign.UpdatedAt = campaign.CreatedAt

	_, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *campaignRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Campaign, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"business_id": businessID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	for cursor.Next(ctx) {
		var campaign models.Campaign
		if err := cursor.Decode(&campaign); err != nil {
			return nil, fmt.Errorf("failed to decode campaign: %w", err)
		}
		campaigns = append(campaigns, &campaign)
	}

	return campaigns, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrCampaignNotFound
	}

	return nil
}

func (r *campaignRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set campaign status: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrCampaignNotFound
	}

	return nil
}
