package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type promotionRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewPromotionRepository(db *mongo.Database, cache CacheService) interfaces.PromotionRepository {
	return &promotionRepository{
		collection: db.Collection("promotions"),
		cache:      cache,
	}
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()

	// Codes are stored normalized so scan lookups match regardless of input casing.
	promotion.QRCode = models.NormalizeCode(promotion.QRCode)

	_, err := r.collection.InsertOne(ctx, promotion)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	if promotion := r.getPromotionFromCache(ctx, id.Hex()); promotion != nil {
		return promotion, nil
	}

	var promotion models.Promotion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&promotion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	if promotion.Status == models.PromotionStatusActive {
		r.cachePromotion(ctx, &promotion)
	}

	return &promotion, nil
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	code = models.NormalizeCode(code)

	var promotion models.Promotion
	err := r.collection.FindOne(ctx, bson.M{"qr_code": code}).Decode(&promotion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get promotion by code: %w", err)
	}

	return &promotion, nil
}

func (r *promotionRepository) List(ctx context.Context) ([]*models.Promotion, error) {
	return r.find(ctx, bson.M{})
}

func (r *promotionRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Promotion, error) {
	return r.find(ctx, bson.M{"business_id": businessID})
}

func (r *promotionRepository) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Promotion, error) {
	return r.find(ctx, bson.M{"campaign_id": campaignID})
}

func (r *promotionRepository) DeleteByBusiness(ctx context.Context, businessID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"business_id": businessID})
	if err != nil {
		return fmt.Errorf("failed to delete promotions for business: %w", err)
	}
	return nil
}

// SetStock applies the stock state machine in a single pipeline update so the
// clamp and the status transition commit together.
func (r *promotionRepository) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Promotion, error) {
	if stock < 0 {
		stock = 0
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"stock_count": stock,
			"status": bson.M{"$switch": bson.M{
				"branches": []bson.M{
					{
						"case": bson.M{"$and": []bson.M{
							{"$eq": []interface{}{"$quantity", string(models.QuantityLimited)}},
							{"$eq": []interface{}{stock, 0}},
						}},
						"then": string(models.PromotionStatusSoldOut),
					},
					{
						"case": bson.M{"$and": []bson.M{
							{"$eq": []interface{}{"$quantity", string(models.QuantityLimited)}},
							{"$gt": []interface{}{stock, 0}},
							{"$eq": []interface{}{"$status", string(models.PromotionStatusSoldOut)}},
						}},
						"then": string(models.PromotionStatusActive),
					},
				},
				"default": "$status",
			}},
			"updated_at": "$$NOW",
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var promotion models.Promotion
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&promotion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}

	r.invalidatePromotionCache(ctx, id.Hex())
	return &promotion, nil
}

func (r *promotionRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PromotionStatus) (*models.Promotion, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var promotion models.Promotion
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		opts,
	).Decode(&promotion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to set status: %w", err)
	}

	r.invalidatePromotionCache(ctx, id.Hex())
	return &promotion, nil
}

// Redeem commits the whole redemption (counter increment, stock decrement,
// sold_out flip) as one filtered pipeline update on the matched document.
// The filter only matches a promotion that is still redeemable, so two
// concurrent scans of the last unit cannot both succeed.
func (r *promotionRepository) Redeem(ctx context.Context, code string, now time.Time) (*models.Promotion, error) {
	code = models.NormalizeCode(code)

	filter := bson.M{
		"qr_code":     code,
		"valid_until": bson.M{"$gte": now},
		"$or": []bson.M{
			{"quantity": string(models.QuantityUnlimited)},
			{"stock_count": bson.M{"$gt": 0}},
		},
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"redemptions_count": bson.M{"$add": []interface{}{"$redemptions_count", 1}},
			"stock_count": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": []interface{}{"$quantity", string(models.QuantityLimited)}},
				"then": bson.M{"$max": []interface{}{bson.M{"$subtract": []interface{}{"$stock_count", 1}}, 0}},
				"else": "$stock_count",
			}},
			"status": bson.M{"$cond": bson.M{
				"if": bson.M{"$and": []bson.M{
					{"$eq": []interface{}{"$quantity", string(models.QuantityLimited)}},
					{"$eq": []interface{}{"$stock_count", 1}},
				}},
				"then": string(models.PromotionStatusSoldOut),
				"else": "$status",
			}},
			"updated_at": "$$NOW",
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var promotion models.Promotion
	err := r.collection.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&promotion)
	if err == nil {
		r.invalidatePromotionCache(ctx, promotion.ID.Hex())
		return &promotion, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to redeem promotion: %w", err)
	}

	// Nothing matched: re-read without conditions to classify the refusal in
	// the order the scan contract requires.
	existing, lookupErr := r.GetByCode(ctx, code)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if existing.IsExpired(now) {
		return nil, models.ErrPromotionExpired
	}
	return nil, models.ErrOutOfStock
}

func (r *promotionRepository) SetCampaignProducts(ctx context.Context, campaignID primitive.ObjectID, promotionIDs []primitive.ObjectID) error {
	if promotionIDs == nil {
		promotionIDs = []primitive.ObjectID{}
	}

	// Link every selected promotion to the campaign.
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": promotionIDs}},
		bson.M{"$set": bson.M{"campaign_id": campaignID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to link campaign products: %w", err)
	}

	// Unlink current members that were left out of the new set. Promotions
	// pointing at other campaigns are untouched.
	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"campaign_id": campaignID, "_id": bson.M{"$nin": promotionIDs}},
		bson.M{"$unset": bson.M{"campaign_id": ""}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlink campaign products: %w", err)
	}

	return nil
}

func (r *promotionRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	return r.incrementCounter(ctx, id, "views_count")
}

func (r *promotionRepository) IncrementSaves(ctx context.Context, id primitive.ObjectID) error {
	return r.incrementCounter(ctx, id, "saves_count")
}

func (r *promotionRepository) incrementCounter(ctx context.Context, id primitive.ObjectID, field string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return models.ErrPromotionNotFound
	}

	r.invalidatePromotionCache(ctx, id.Hex())
	return nil
}

func (r *promotionRepository) find(ctx context.Context, filter bson.M) ([]*models.Promotion, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find promotions: %w", err)
	}
	defer cursor.Close(ctx)

	var promotions []*models.Promotion
	for cursor.Next(ctx) {
		var promotion models.Promotion
		if err := cursor.Decode(&promotion); err != nil {
			return nil, fmt.Errorf("failed to decode promotion: %w", err)
		}
		promotions = append(promotions, &promotion)
	}

	return promotions, nil
}

func (r *promotionRepository) cachePromotion(ctx context.Context, promotion *models.Promotion) {
	if r.cache != nil && promotion.Status == models.PromotionStatusActive {
		cacheKey := fmt.Sprintf("promotion:%s", promotion.ID.Hex())
		r.cache.Set(ctx, cacheKey, promotion, utils.PromotionCacheTTL)
	}
}

func (r *promotionRepository) getPromotionFromCache(ctx context.Context, promotionID string) *models.Promotion {
	if r.cache == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("promotion:%s", promotionID)
	var promotion models.Promotion
	if err := r.cache.Get(ctx, cacheKey, &promotion); err != nil {
		return nil
	}

	return &promotion
}

func (r *promotionRepository) invalidatePromotionCache(ctx context.Context, promotionID string) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("promotion:%s", promotionID)
		r.cache.Delete(ctx, cacheKey)
	}
}
