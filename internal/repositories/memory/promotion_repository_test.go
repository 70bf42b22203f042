package memory

import (
	"context"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestPromotion(code string, quantity models.QuantityKind, stock int) *models.Promotion {
	return &models.Promotion{
		BusinessID:  primitive.NewObjectID(),
		ProductName: "Tomate Italiano kg",
		Category:    "hortifruti",
		PriceBefore: 9.99,
		PriceNow:    4.99,
		Quantity:    quantity,
		StockCount:  stock,
		ValidUntil:  time.Now().Add(24 * time.Hour),
		QRCode:      code,
		Status:      models.PromotionStatusActive,
	}
}

func mustCreate(t *testing.T, repo interfaces.PromotionRepository, p *models.Promotion) *models.Promotion {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateNormalizesAndRejectsDuplicateCodes(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()

	mustCreate(t, repo, newTestPromotion("  promo-aaa111 ", models.QuantityUnlimited, 0))

	stored, err := repo.GetByCode(ctx, "PROMO-AAA111")
	require.NoError(t, err)
	assert.Equal(t, "PROMO-AAA111", stored.QRCode)

	// Codes differing only in case or whitespace are the same code.
	err = repo.Create(ctx, newTestPromotion("PROMO-AAA111", models.QuantityUnlimited, 0))
	assert.ErrorIs(t, err, models.ErrDuplicateCode)
}

func TestRedeemUnlimitedNeverTouchesStock(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-UNL001", models.QuantityUnlimited, 0))

	for i := 1; i <= 3; i++ {
		redeemed, err := repo.Redeem(ctx, p.QRCode, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(i), redeemed.RedemptionsCount)
		assert.Equal(t, 0, redeemed.StockCount)
		assert.Equal(t, models.PromotionStatusActive, redeemed.Status)
	}
}

func TestRedeemLastUnitFlipsSoldOut(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-LIM001", models.QuantityLimited, 2))

	first, err := repo.Redeem(ctx, p.QRCode, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, first.StockCount)
	assert.Equal(t, models.PromotionStatusActive, first.Status)

	second, err := repo.Redeem(ctx, p.QRCode, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, second.StockCount)
	assert.Equal(t, models.PromotionStatusSoldOut, second.Status)
	assert.Equal(t, int64(2), second.RedemptionsCount)

	// A third scan fails and mutates nothing.
	_, err = repo.Redeem(ctx, p.QRCode, time.Now())
	assert.ErrorIs(t, err, models.ErrOutOfStock)

	stored, err := repo.GetByCode(ctx, p.QRCode)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.RedemptionsCount)
	assert.Equal(t, 0, stored.StockCount)
}

func TestRedeemFailureOrderAndNoMutation(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()

	_, err := repo.Redeem(ctx, "PROMO-MISSING", time.Now())
	assert.ErrorIs(t, err, models.ErrCodeNotFound)

	// Expired wins over out-of-stock for a promotion that is both.
	expired := newTestPromotion("PROMO-EXP001", models.QuantityLimited, 0)
	expired.ValidUntil = time.Now().Add(-time.Hour)
	mustCreate(t, repo, expired)

	_, err = repo.Redeem(ctx, "PROMO-EXP001", time.Now())
	assert.ErrorIs(t, err, models.ErrPromotionExpired)

	stored, err := repo.GetByCode(ctx, "PROMO-EXP001")
	require.NoError(t, err)
	assert.Zero(t, stored.RedemptionsCount)
}

func TestRedeemConcurrentLastUnit(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-RACE01", models.QuantityLimited, 1))

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := repo.Redeem(ctx, p.QRCode, time.Now())
			results <- err
		}()
	}

	var successes, outOfStock int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, models.ErrOutOfStock):
			outOfStock++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, outOfStock)

	stored, err := repo.GetByCode(ctx, p.QRCode)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.RedemptionsCount)
	assert.Equal(t, 0, stored.StockCount)
}

func TestSetStockStateMachine(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-STK001", models.QuantityLimited, 5))

	// Negative input clamps to zero and flips to sold_out.
	updated, err := repo.SetStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockCount)
	assert.Equal(t, models.PromotionStatusSoldOut, updated.Status)

	// Restocking a sold_out promotion reactivates it.
	updated, err = repo.SetStock(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StockCount)
	assert.Equal(t, models.PromotionStatusActive, updated.Status)
}

func TestSetStockNeverReactivatesPaused(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-PAU001", models.QuantityLimited, 5))

	_, err := repo.SetStatus(ctx, p.ID, models.PromotionStatusPaused)
	require.NoError(t, err)

	updated, err := repo.SetStock(ctx, p.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.StockCount)
	assert.Equal(t, models.PromotionStatusPaused, updated.Status)
}

func TestSetStockUnlimitedIgnoresStatus(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	p := mustCreate(t, repo, newTestPromotion("PROMO-UNL002", models.QuantityUnlimited, 0))

	updated, err := repo.SetStock(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusActive, updated.Status)
}

func TestSetCampaignProductsReconciles(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	campaignID := primitive.NewObjectID()
	otherCampaignID := primitive.NewObjectID()

	a := mustCreate(t, repo, newTestPromotion("PROMO-CPA001", models.QuantityUnlimited, 0))
	b := mustCreate(t, repo, newTestPromotion("PROMO-CPB001", models.QuantityUnlimited, 0))
	c := mustCreate(t, repo, newTestPromotion("PROMO-CPC001", models.QuantityUnlimited, 0))

	// c belongs to an unrelated campaign and must stay untouched.
	require.NoError(t, repo.SetCampaignProducts(ctx, otherCampaignID, []primitive.ObjectID{c.ID}))

	require.NoError(t, repo.SetCampaignProducts(ctx, campaignID, []primitive.ObjectID{a.ID, b.ID}))

	members, err := repo.ListByCampaign(ctx, campaignID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// Shrinking the set unlinks the dropped member only.
	require.NoError(t, repo.SetCampaignProducts(ctx, campaignID, []primitive.ObjectID{a.ID}))

	members, err = repo.ListByCampaign(ctx, campaignID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, a.ID, members[0].ID)

	dropped, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, dropped.CampaignID)

	unrelated, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, unrelated.CampaignID)
	assert.Equal(t, otherCampaignID, *unrelated.CampaignID)
}

func TestSetCampaignProductsIdempotent(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()
	campaignID := primitive.NewObjectID()

	a := mustCreate(t, repo, newTestPromotion("PROMO-IDM001", models.QuantityUnlimited, 0))

	set := []primitive.ObjectID{a.ID}
	require.NoError(t, repo.SetCampaignProducts(ctx, campaignID, set))
	require.NoError(t, repo.SetCampaignProducts(ctx, campaignID, set))

	members, err := repo.ListByCampaign(ctx, campaignID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestDeleteByBusinessFreesCodes(t *testing.T) {
	repo := NewPromotionRepository()
	ctx := context.Background()

	p := mustCreate(t, repo, newTestPromotion("PROMO-DEL001", models.QuantityUnlimited, 0))
	require.NoError(t, repo.DeleteByBusiness(ctx, p.BusinessID))

	_, err := repo.GetByCode(ctx, "PROMO-DEL001")
	assert.ErrorIs(t, err, models.ErrCodeNotFound)

	// The code is reusable after deletion.
	assert.NoError(t, repo.Create(ctx, newTestPromotion("PROMO-DEL001", models.QuantityUnlimited, 0)))
}
