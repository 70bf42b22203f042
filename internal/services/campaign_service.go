package services

import (
	"context"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignService struct {
	campaigns  interfaces.CampaignRepository
	promotions interfaces.PromotionRepository
	logger     *logger.Logger
}

func NewCampaignService(
	campaigns interfaces.CampaignRepository,
	promotions interfaces.PromotionRepository,
	log *logger.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:  campaigns,
		promotions: promotions,
		logger:     log,
	}
}

type CreateCampaignInput struct {
	BusinessID  primitive.ObjectID `json:"business_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
}

func (s *CampaignService) Create(ctx context.Context, input *CreateCampaignInput) (*models.Campaign, error) {
	campaign := &models.Campaign{
		BusinessID:  input.BusinessID,
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.CampaignStatusDraft,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

func (s *CampaignService) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Campaign, error) {
	return s.campaigns.ListByBusiness(ctx, businessID)
}

func (s *CampaignService) Update(ctx context.Context, campaign *models.Campaign) error {
	return s.campaigns.Update(ctx, campaign)
}

func (s *CampaignService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) (*models.Campaign, error) {
	if err := s.campaigns.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.campaigns.GetByID(ctx, id)
}

// Duplicate clones a campaign as an independent draft. The copy starts with
// no member promotions; membership is never inherited.
func (s *CampaignService) Duplicate(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	original, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := original.CloneAsDraft(time.Now())
	if err := s.campaigns.Create(ctx, clone); err != nil {
		return nil, err
	}

	s.logger.WithBusinessID(clone.BusinessID).WithFields(map[string]interface{}{
		"campaign_id": clone.ID.Hex(),
		"source_id":   original.ID.Hex(),
	}).Info("Campaign duplicated")

	return clone, nil
}

// SetProducts reconciles campaign membership against the full desired set.
// Every listed promotion must belong to the same business as the campaign.
func (s *CampaignService) SetProducts(ctx context.Context, businessID, campaignID primitive.ObjectID, promotionIDs []primitive.ObjectID) error {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign.BusinessID != businessID {
		return models.ErrInvalidCampaignRef
	}

	for _, id := range promotionIDs {
		promotion, err := s.promotions.GetByID(ctx, id)
		if err != nil {
			return models.ErrInvalidCampaignRef
		}
		if promotion.BusinessID != businessID {
			return models.ErrInvalidCampaignRef
		}
	}

	return s.promotions.SetCampaignProducts(ctx, campaignID, promotionIDs)
}

func (s *CampaignService) GetProducts(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Promotion, error) {
	return s.promotions.ListByCampaign(ctx, campaignID)
}
