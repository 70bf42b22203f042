package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePromotionValidatesPricing(t *testing.T) {
	svc, _, _, _ := newPromotionFixtures(t)
	ctx := context.Background()

	base := func() *CreatePromotionInput {
		return &CreatePromotionInput{
			BusinessID:  primitive.NewObjectID(),
			ProductName: "Filé de Frango kg",
			Category:    "acougue",
			PriceBefore: 19.90,
			PriceNow:    12.90,
			ValidUntil:  time.Now().Add(24 * time.Hour),
		}
	}

	promotion, err := svc.Create(ctx, base())
	require.NoError(t, err)
	assert.Equal(t, 35, promotion.DiscountPercent)
	assert.Equal(t, models.QuantityUnlimited, promotion.Quantity)
	assert.Equal(t, models.PromotionStatusActive, promotion.Status)

	equal := base()
	equal.PriceNow = equal.PriceBefore
	_, err = svc.Create(ctx, equal)
	assert.ErrorIs(t, err, models.ErrInvalidPricing)

	higher := base()
	higher.PriceNow = 25.00
	_, err = svc.Create(ctx, higher)
	assert.ErrorIs(t, err, models.ErrInvalidPricing)

	free := base()
	free.PriceNow = 0
	_, err = svc.Create(ctx, free)
	assert.ErrorIs(t, err, models.ErrInvalidPricing)
}

func TestCreatePromotionGeneratesCode(t *testing.T) {
	svc, _, _, _ := newPromotionFixtures(t)

	promotion, err := svc.Create(context.Background(), &CreatePromotionInput{
		BusinessID:  primitive.NewObjectID(),
		ProductName: "Detergente 500ml",
		Category:    "limpeza",
		PriceBefore: 3.99,
		PriceNow:    1.99,
		ValidUntil:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(promotion.QRCode, utils.PromoCodePrefix))
	assert.Len(t, promotion.QRCode, len(utils.PromoCodePrefix)+utils.PromoCodeSuffixChars)
}

func TestCreatePromotionRejectsForeignCampaign(t *testing.T) {
	svc, _, campaigns, _ := newPromotionFixtures(t)
	ctx := context.Background()

	campaign := &models.Campaign{
		BusinessID: primitive.NewObjectID(),
		Title:      "Feirão da Semana",
		Status:     models.CampaignStatusActive,
	}
	require.NoError(t, campaigns.Create(ctx, campaign))

	// Campaign belongs to another business.
	_, err := svc.Create(ctx, &CreatePromotionInput{
		BusinessID:  primitive.NewObjectID(),
		CampaignID:  &campaign.ID,
		ProductName: "Banana Prata kg",
		Category:    "hortifruti",
		PriceBefore: 7.99,
		PriceNow:    3.99,
		ValidUntil:  time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrInvalidCampaignRef)

	// Unknown campaign ID.
	missing := primitive.NewObjectID()
	_, err = svc.Create(ctx, &CreatePromotionInput{
		BusinessID:  campaign.BusinessID,
		CampaignID:  &missing,
		ProductName: "Banana Prata kg",
		Category:    "hortifruti",
		PriceBefore: 7.99,
		PriceNow:    3.99,
		ValidUntil:  time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrInvalidCampaignRef)

	// Same business works.
	promotion, err := svc.Create(ctx, &CreatePromotionInput{
		BusinessID:  campaign.BusinessID,
		CampaignID:  &campaign.ID,
		ProductName: "Banana Prata kg",
		Category:    "hortifruti",
		PriceBefore: 7.99,
		PriceNow:    3.99,
		ValidUntil:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, promotion.CampaignID)
	assert.Equal(t, campaign.ID, *promotion.CampaignID)
}

func TestBulkCreateSkipsInvalidRows(t *testing.T) {
	svc, _, _, _ := newPromotionFixtures(t)
	businessID := primitive.NewObjectID()

	rows := []ImportRow{
		{ProductName: "Arroz 5kg", Category: "mercearia", PriceBefore: 29.90, PriceNow: 19.90, StockCount: 10},
		{ProductName: "", PriceBefore: 10, PriceNow: 5},                      // missing name
		{ProductName: "Feijão 1kg", PriceBefore: 8.99, PriceNow: 9.99},      // price inverted
		{ProductName: "Café 500g", PriceBefore: 24.90, PriceNow: 17.90},     // ok, defaults apply
	}

	created, skipped, err := svc.BulkCreate(context.Background(), businessID, rows)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, 2, skipped)

	arroz := created[0]
	assert.Equal(t, models.QuantityLimited, arroz.Quantity)
	assert.Equal(t, 10, arroz.StockCount)
	assert.Equal(t, "mercearia", arroz.Category)

	cafe := created[1]
	assert.Equal(t, models.QuantityUnlimited, cafe.Quantity)
	assert.Equal(t, utils.DefaultImportCategory, cafe.Category)
	expectedValidity := time.Now().AddDate(0, 0, utils.DefaultImportValidityDays)
	assert.WithinDuration(t, expectedValidity, cafe.ValidUntil, time.Minute)
}

func TestSetStatusRejectsNonToggleStates(t *testing.T) {
	svc, repo, _, _ := newPromotionFixtures(t)
	ctx := context.Background()

	p := seedPromotion(t, repo, nil)

	updated, err := svc.SetStatus(ctx, p.ID, models.PromotionStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusPaused, updated.Status)

	_, err = svc.SetStatus(ctx, p.ID, models.PromotionStatusSoldOut)
	assert.Error(t, err)
	_, err = svc.SetStatus(ctx, p.ID, models.PromotionStatusExpired)
	assert.Error(t, err)
}

func TestToggleFavorite(t *testing.T) {
	svc, repo, _, _ := newPromotionFixtures(t)
	ctx := context.Background()

	p := seedPromotion(t, repo, nil)
	userID := primitive.NewObjectID()

	favorite, err := svc.ToggleFavorite(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, favorite)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.SavesCount)

	favorites, err := svc.ListFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, p.ID, favorites[0].ID)

	// Toggling again removes it; the save counter never decrements.
	favorite, err = svc.ToggleFavorite(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.False(t, favorite)

	stored, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.SavesCount)

	favorites, err = svc.ListFavorites(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleFavoriteUnknownPromotion(t *testing.T) {
	svc, _, _, _ := newPromotionFixtures(t)

	_, err := svc.ToggleFavorite(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrPromotionNotFound)
}
