package services

import (
	"context"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCampaignFixtures(t *testing.T) (*CampaignService, interfaces.CampaignRepository, interfaces.PromotionRepository) {
	t.Helper()
	campaigns := memory.NewCampaignRepository()
	promotions := memory.NewPromotionRepository()
	svc := NewCampaignService(campaigns, promotions, testLogger(t))
	return svc, campaigns, promotions
}

func TestCreateCampaignStartsAsDraft(t *testing.T) {
	svc, _, _ := newCampaignFixtures(t)

	campaign, err := svc.Create(context.Background(), &CreateCampaignInput{
		BusinessID: primitive.NewObjectID(),
		Title:      "Aniversário da Loja",
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
	assert.False(t, campaign.ID.IsZero())
}

func TestDuplicateCampaignDropsMembership(t *testing.T) {
	svc, _, promotions := newCampaignFixtures(t)
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	original, err := svc.Create(ctx, &CreateCampaignInput{
		BusinessID: businessID,
		Title:      "Black Friday",
	})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, original.ID, models.CampaignStatusActive)
	require.NoError(t, err)

	member := seedPromotion(t, promotions, func(p *models.Promotion) {
		p.BusinessID = businessID
	})
	require.NoError(t, svc.SetProducts(ctx, businessID, original.ID, []primitive.ObjectID{member.ID}))

	clone, err := svc.Duplicate(ctx, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, clone.ID)
	assert.Equal(t, "Black Friday (Cópia)", clone.Title)
	assert.Equal(t, models.CampaignStatusDraft, clone.Status)
	assert.Equal(t, businessID, clone.BusinessID)

	// Membership stays with the original only.
	cloneProducts, err := svc.GetProducts(ctx, clone.ID)
	require.NoError(t, err)
	assert.Empty(t, cloneProducts)

	originalProducts, err := svc.GetProducts(ctx, original.ID)
	require.NoError(t, err)
	assert.Len(t, originalProducts, 1)
}

func TestSetProductsEnforcesOwnership(t *testing.T) {
	svc, _, promotions := newCampaignFixtures(t)
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	campaign, err := svc.Create(ctx, &CreateCampaignInput{
		BusinessID: businessID,
		Title:      "Semana do Cliente",
	})
	require.NoError(t, err)

	mine := seedPromotion(t, promotions, func(p *models.Promotion) {
		p.BusinessID = businessID
	})
	foreign := seedPromotion(t, promotions, nil)

	// A foreign promotion in the set rejects the whole request.
	err = svc.SetProducts(ctx, businessID, campaign.ID, []primitive.ObjectID{mine.ID, foreign.ID})
	assert.ErrorIs(t, err, models.ErrInvalidCampaignRef)

	members, err := svc.GetProducts(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	// The caller must own the campaign too.
	err = svc.SetProducts(ctx, primitive.NewObjectID(), campaign.ID, []primitive.ObjectID{mine.ID})
	assert.ErrorIs(t, err, models.ErrInvalidCampaignRef)

	require.NoError(t, svc.SetProducts(ctx, businessID, campaign.ID, []primitive.ObjectID{mine.ID}))
	members, err = svc.GetProducts(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestSetProductsReconciliation(t *testing.T) {
	svc, _, promotions := newCampaignFixtures(t)
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	campaign, err := svc.Create(ctx, &CreateCampaignInput{
		BusinessID: businessID,
		Title:      "Ofertas de Inverno",
	})
	require.NoError(t, err)

	a := seedPromotion(t, promotions, func(p *models.Promotion) { p.BusinessID = businessID })
	b := seedPromotion(t, promotions, func(p *models.Promotion) { p.BusinessID = businessID })

	require.NoError(t, svc.SetProducts(ctx, businessID, campaign.ID, []primitive.ObjectID{a.ID, b.ID}))

	// Replacing with just b unlinks a.
	require.NoError(t, svc.SetProducts(ctx, businessID, campaign.ID, []primitive.ObjectID{b.ID}))

	members, err := svc.GetProducts(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, b.ID, members[0].ID)

	// The empty set clears the campaign.
	require.NoError(t, svc.SetProducts(ctx, businessID, campaign.ID, nil))
	members, err = svc.GetProducts(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
