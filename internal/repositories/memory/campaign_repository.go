package memory

import (
	"context"
	"sync"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type campaignRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Campaign
}

func NewCampaignRepository() interfaces.CampaignRepository {
	return &campaignRepository{
		items: make(map[primitive.ObjectID]*models.Campaign),
	}
}

func cloneCampaign(c *models.Campaign) *models.Campaign {
	cc := *c
	return &cc
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now()
	}
	campaign.UpdatedAt = campaign.CreatedAt

	r.items[campaign.ID] = cloneCampaign(campaign)
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, models.ErrCampaignNotFound
	}
	return cloneCampaign(c), nil
}

func (r *campaignRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Campaign
	for _, c := range r.items {
		if c.BusinessID == businessID {
			out = append(out, cloneCampaign(c))
		}
	}
	return out, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[campaign.ID]; !ok {
		return models.ErrCampaignNotFound
	}
	campaign.UpdatedAt = time.Now()
	r.items[campaign.ID] = cloneCampaign(campaign)
	return nil
}

func (r *campaignRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return models.ErrCampaignNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}
