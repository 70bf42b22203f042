package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/utils"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromotionService struct {
	promotions interfaces.PromotionRepository
	campaigns  interfaces.CampaignRepository
	cache      CacheService
	logger     *logger.Logger
}

func NewPromotionService(
	promotions interfaces.PromotionRepository,
	campaigns interfaces.CampaignRepository,
	cache CacheService,
	log *logger.Logger,
) *PromotionService {
	return &PromotionService{
		promotions: promotions,
		campaigns:  campaigns,
		cache:      cache,
		logger:     log,
	}
}

type CreatePromotionInput struct {
	BusinessID  primitive.ObjectID  `json:"business_id"`
	CampaignID  *primitive.ObjectID `json:"campaign_id,omitempty"`
	ProductName string              `json:"product_name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	PriceBefore float64             `json:"price_before"`
	PriceNow    float64             `json:"price_now"`
	Quantity    models.QuantityKind `json:"quantity"`
	StockCount  int                 `json:"stock_count"`
	ValidUntil  time.Time           `json:"valid_until"`
	PhotoURL    string              `json:"photo_url"`
	// QRCode is optional; when empty a unique code is generated.
	QRCode string `json:"qr_code"`
}

// ImportRow is one pre-parsed spreadsheet row from the bulk import shim.
type ImportRow struct {
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	PriceBefore  float64 `json:"price_before"`
	PriceNow     float64 `json:"price_now"`
	StockCount   int     `json:"stock_count"`
	ValidityDays int     `json:"validity_days"`
}

func (s *PromotionService) Create(ctx context.Context, input *CreatePromotionInput) (*models.Promotion, error) {
	if input.PriceBefore <= 0 || input.PriceNow <= 0 || input.PriceNow >= input.PriceBefore {
		return nil, models.ErrInvalidPricing
	}

	if input.CampaignID != nil {
		campaign, err := s.campaigns.GetByID(ctx, *input.CampaignID)
		if err != nil {
			return nil, models.ErrInvalidCampaignRef
		}
		if campaign.BusinessID != input.BusinessID {
			return nil, models.ErrInvalidCampaignRef
		}
	}

	quantity := input.Quantity
	if quantity == "" {
		quantity = models.QuantityUnlimited
	}
	stock := input.StockCount
	if stock < 0 {
		stock = 0
	}

	promotion := &models.Promotion{
		BusinessID:      input.BusinessID,
		CampaignID:      input.CampaignID,
		ProductName:     input.ProductName,
		Description:     input.Description,
		Category:        input.Category,
		PriceBefore:     input.PriceBefore,
		PriceNow:        input.PriceNow,
		DiscountPercent: models.ComputeDiscountPercent(input.PriceBefore, input.PriceNow),
		Quantity:        quantity,
		StockCount:      stock,
		ValidUntil:      input.ValidUntil,
		PhotoURL:        input.PhotoURL,
		Status:          models.PromotionStatusActive,
	}

	if input.QRCode != "" {
		promotion.QRCode = models.NormalizeCode(input.QRCode)
		if err := s.promotions.Create(ctx, promotion); err != nil {
			return nil, err
		}
		return promotion, nil
	}

	// Generated codes can collide; retry with a fresh one.
	var err error
	for attempt := 0; attempt < utils.PromoCodeMaxRetries; attempt++ {
		promotion.QRCode = utils.GeneratePromoCode()
		err = s.promotions.Create(ctx, promotion)
		if err == nil {
			return promotion, nil
		}
		if !errors.Is(err, models.ErrDuplicateCode) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to allocate a unique redemption code: %w", err)
}

// BulkCreate maps import rows onto the regular creation path. Malformed rows
// are skipped, never aborting the batch.
func (s *PromotionService) BulkCreate(ctx context.Context, businessID primitive.ObjectID, rows []ImportRow) ([]*models.Promotion, int, error) {
	created := make([]*models.Promotion, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		if row.ProductName == "" || row.PriceBefore <= 0 || row.PriceNow <= 0 || row.PriceNow >= row.PriceBefore {
			skipped++
			continue
		}

		category := row.Category
		if category == "" {
			category = utils.DefaultImportCategory
		}
		validityDays := row.ValidityDays
		if validityDays <= 0 {
			validityDays = utils.DefaultImportValidityDays
		}

		quantity := models.QuantityUnlimited
		if row.StockCount > 0 {
			quantity = models.QuantityLimited
		}

		promotion, err := s.Create(ctx, &CreatePromotionInput{
			BusinessID:  businessID,
			ProductName: row.ProductName,
			Description: "Importado via CSV",
			Category:    category,
			PriceBefore: row.PriceBefore,
			PriceNow:    row.PriceNow,
			Quantity:    quantity,
			StockCount:  row.StockCount,
			ValidUntil:  time.Now().AddDate(0, 0, validityDays),
		})
		if err != nil {
			s.logger.WithError(err).WithField("product_name", row.ProductName).Warn("Skipping bulk import row")
			skipped++
			continue
		}
		created = append(created, promotion)
	}

	s.logger.WithBusinessID(businessID).WithFields(map[string]interface{}{
		"created": len(created),
		"skipped": skipped,
	}).Info("Bulk promotion import finished")

	return created, skipped, nil
}

func (s *PromotionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	return s.promotions.GetByID(ctx, id)
}

func (s *PromotionService) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Promotion, error) {
	return s.promotions.ListByBusiness(ctx, businessID)
}

func (s *PromotionService) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Promotion, error) {
	return s.promotions.SetStock(ctx, id, stock)
}

// SetStatus is the merchant's explicit active/paused toggle. Activating a
// zero-stock limited promotion is accepted as requested; discovery still
// hides it until it is restocked.
func (s *PromotionService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PromotionStatus) (*models.Promotion, error) {
	if status != models.PromotionStatusActive && status != models.PromotionStatusPaused {
		return nil, fmt.Errorf("status %q is not a merchant toggle", status)
	}
	return s.promotions.SetStatus(ctx, id, status)
}

func (s *PromotionService) RegisterView(ctx context.Context, id primitive.ObjectID) error {
	return s.promotions.IncrementViews(ctx, id)
}

// ToggleFavorite flips the promotion in the user's favorites set and reports
// the new state. Saving bumps the promotion's save counter; unsaving does not
// decrement it, the counter only moves forward.
func (s *PromotionService) ToggleFavorite(ctx context.Context, userID, promotionID primitive.ObjectID) (bool, error) {
	if _, err := s.promotions.GetByID(ctx, promotionID); err != nil {
		return false, err
	}

	key := favoritesKey(userID)
	member := promotionID.Hex()

	isFavorite, err := s.cache.SIsMember(ctx, key, member)
	if err != nil {
		return false, fmt.Errorf("failed to check favorites: %w", err)
	}

	if isFavorite {
		if err := s.cache.SRem(ctx, key, member); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	if err := s.cache.SAdd(ctx, key, member); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	if err := s.promotions.IncrementSaves(ctx, promotionID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PromotionService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Promotion, error) {
	members, err := s.cache.SMembers(ctx, favoritesKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	promotions := make([]*models.Promotion, 0, len(members))
	for _, member := range members {
		id, err := primitive.ObjectIDFromHex(member)
		if err != nil {
			continue
		}
		promotion, err := s.promotions.GetByID(ctx, id)
		if err != nil {
			// Favorite pointing at a deleted promotion; drop it silently.
			continue
		}
		promotions = append(promotions, promotion)
	}

	return promotions, nil
}

func favoritesKey(userID primitive.ObjectID) string {
	return fmt.Sprintf("favorites:%s", userID.Hex())
}
