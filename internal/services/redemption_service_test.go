package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemSuccess(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))
	ctx := context.Background()

	p := seedPromotion(t, repo, nil)

	result, err := svc.Redeem(ctx, p.QRCode)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.RedemptionFailureNone, result.Failure)
	assert.Equal(t, "Oferta validada com sucesso!", result.Message)
	assert.False(t, result.FinalUnit)
	require.NotNil(t, result.Promotion)
	assert.Equal(t, int64(1), result.Promotion.RedemptionsCount)
}

func TestRedeemNormalizesScannedCode(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))

	p := seedPromotion(t, repo, func(p *models.Promotion) {
		p.QRCode = "PROMO-SCAN01"
	})
	_ = p

	result, err := svc.Redeem(context.Background(), "  promo-scan01 ")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestRedeemLastUnitWarns(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))
	ctx := context.Background()

	p := seedPromotion(t, repo, func(p *models.Promotion) {
		p.Quantity = models.QuantityLimited
		p.StockCount = 1
	})

	result, err := svc.Redeem(ctx, p.QRCode)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.FinalUnit)
	assert.Equal(t, "Validado! Atenção: Estoque acabou.", result.Message)
	assert.Equal(t, models.PromotionStatusSoldOut, result.Promotion.Status)
}

func TestRedeemUnknownCode(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))

	result, err := svc.Redeem(context.Background(), "PROMO-NOPE99")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.RedemptionFailureNotFound, result.Failure)
	assert.Equal(t, "Código inválido ou oferta não encontrada.", result.Message)
	assert.Nil(t, result.Promotion)
}

func TestRedeemExpiredIncludesDate(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))
	ctx := context.Background()

	validUntil := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	p := seedPromotion(t, repo, func(p *models.Promotion) {
		p.ValidUntil = validUntil
	})
	svc.now = func() time.Time { return validUntil.Add(time.Hour) }

	result, err := svc.Redeem(ctx, p.QRCode)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.RedemptionFailureExpired, result.Failure)
	assert.Equal(t, fmt.Sprintf("Oferta expirada em %s", "15/03/2026"), result.Message)

	// The failed scan left the promotion untouched.
	stored, err := repo.GetByCode(ctx, p.QRCode)
	require.NoError(t, err)
	assert.Zero(t, stored.RedemptionsCount)
}

// flakyLookupRepo reports every code as expired while the follow-up lookup
// keeps failing, as when the document vanishes between the two reads.
type flakyLookupRepo struct {
	interfaces.PromotionRepository
}

func (f *flakyLookupRepo) Redeem(ctx context.Context, code string, now time.Time) (*models.Promotion, error) {
	return nil, models.ErrPromotionExpired
}

func (f *flakyLookupRepo) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	return nil, models.ErrCodeNotFound
}

func TestRedeemExpiredWithoutLookupKeepsExpiredMessage(t *testing.T) {
	svc := NewRedemptionService(&flakyLookupRepo{}, testLogger(t))

	result, err := svc.Redeem(context.Background(), "PROMO-GONE01")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.RedemptionFailureExpired, result.Failure)
	assert.Equal(t, "Oferta expirada.", result.Message)
}

func TestRedeemOutOfStock(t *testing.T) {
	repo := memory.NewPromotionRepository()
	svc := NewRedemptionService(repo, testLogger(t))
	ctx := context.Background()

	p := seedPromotion(t, repo, func(p *models.Promotion) {
		p.Quantity = models.QuantityLimited
		p.StockCount = 0
		p.Status = models.PromotionStatusSoldOut
	})

	result, err := svc.Redeem(ctx, p.QRCode)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.RedemptionFailureOutOfStock, result.Failure)
	assert.Equal(t, "Estoque esgotado para esta oferta.", result.Message)
}
