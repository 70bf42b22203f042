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

type businessRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBusinessRepository(db *mongo.Database, cache CacheService) interfaces.BusinessRepository {
	return &businessRepository{
		collection: db.Collection("businesses"),
		cache:      cache,
	}
}

func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	business.ID = primitive.NewObjectID()
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	if r.cache != nil {
		var cached models.Business
		if err := r.cache.Get(ctx, businessCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var business models.Business
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&business)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, businessCacheKey(id), business, 30*time.Minute)
	}

	return &business, nil
}

func (r *businessRepository) List(ctx context.Context) ([]*models.Business, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find businesses: %w", err)
	}
	defer cursor.Close(ctx)

	var businesses []*models.Business
	for cursor.Next(ctx) {
		var business models.Business
		if err := cursor.Decode(&business); err != nil {
			return nil, fmt.Errorf("failed to decode business: %w", err)
		}
		businesses = append(businesses, &business)
	}

	return businesses, nil
}

func (r *businessRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrBusinessNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *businessRepository) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	return r.Update(ctx, id, map[string]interface{}{"verified": verified})
}

func (r *businessRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrBusinessNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func businessCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("business:%s", id.Hex())
}

func (r *businessRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, businessCacheKey(id))
	}
}
