package memory

import (
	"context"
	"sync"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// promotionRepository is a mutex-guarded in-memory store. It is the backend
// for single-process deployments and for tests; the mongodb package provides
// the durable implementation of the same contract.
type promotionRepository struct {
	mu     sync.RWMutex
	items  map[primitive.ObjectID]*models.Promotion
	byCode map[string]primitive.ObjectID
}

func NewPromotionRepository() interfaces.PromotionRepository {
	return &promotionRepository{
		items:  make(map[primitive.ObjectID]*models.Promotion),
		byCode: make(map[string]primitive.ObjectID),
	}
}

func clonePromotion(p *models.Promotion) *models.Promotion {
	cp := *p
	if p.CampaignID != nil {
		id := *p.CampaignID
		cp.CampaignID = &id
	}
	return &cp
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := models.NormalizeCode(promotion.QRCode)
	if _, taken := r.byCode[code]; taken {
		return models.ErrDuplicateCode
	}

	if promotion.ID.IsZero() {
		promotion.ID = primitive.NewObjectID()
	}
	now := time.Now()
	promotion.QRCode = code
	promotion.CreatedAt = now
	promotion.UpdatedAt = now

	r.items[promotion.ID] = clonePromotion(promotion)
	r.byCode[code] = promotion.ID
	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, models.ErrPromotionNotFound
	}
	return clonePromotion(p), nil
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[models.NormalizeCode(code)]
	if !ok {
		return nil, models.ErrCodeNotFound
	}
	return clonePromotion(r.items[id]), nil
}

func (r *promotionRepository) List(ctx context.Context) ([]*models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Promotion, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, clonePromotion(p))
	}
	return out, nil
}

func (r *promotionRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Promotion
	for _, p := range r.items {
		if p.BusinessID == businessID {
			out = append(out, clonePromotion(p))
		}
	}
	return out, nil
}

func (r *promotionRepository) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Promotion
	for _, p := range r.items {
		if p.CampaignID != nil && *p.CampaignID == campaignID {
			out = append(out, clonePromotion(p))
		}
	}
	return out, nil
}

func (r *promotionRepository) DeleteByBusiness(ctx context.Context, businessID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.BusinessID == businessID {
			delete(r.byCode, p.QRCode)
			delete(r.items, id)
		}
	}
	return nil
}

// SetStock clamps to zero and applies the stock state machine: a limited
// promotion hitting zero goes sold_out, restocking a sold_out promotion
// reactivates it, and any other status (paused in particular) is left alone.
func (r *promotionRepository) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, models.ErrPromotionNotFound
	}

	if stock < 0 {
		stock = 0
	}
	p.StockCount = stock

	if p.IsLimited() {
		if p.StockCount == 0 {
			p.Status = models.PromotionStatusSoldOut
		} else if p.Status == models.PromotionStatusSoldOut {
			p.Status = models.PromotionStatusActive
		}
	}
	p.UpdatedAt = time.Now()

	return clonePromotion(p), nil
}

func (r *promotionRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PromotionStatus) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, models.ErrPromotionNotFound
	}

	p.Status = status
	p.UpdatedAt = time.Now()

	return clonePromotion(p), nil
}

func (r *promotionRepository) Redeem(ctx context.Context, code string, now time.Time) (*models.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byCode[models.NormalizeCode(code)]
	if !ok {
		return nil, models.ErrCodeNotFound
	}
	p := r.items[id]

	if p.IsExpired(now) {
		return nil, models.ErrPromotionExpired
	}
	if p.IsLimited() && p.StockCount <= 0 {
		return nil, models.ErrOutOfStock
	}

	p.RedemptionsCount++
	if p.IsLimited() {
		p.StockCount--
		if p.StockCount == 0 {
			p.Status = models.PromotionStatusSoldOut
		}
	}
	p.UpdatedAt = now

	return clonePromotion(p), nil
}

func (r *promotionRepository) SetCampaignProducts(ctx context.Context, campaignID primitive.ObjectID, promotionIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	selected := make(map[primitive.ObjectID]bool, len(promotionIDs))
	for _, id := range promotionIDs {
		selected[id] = true
	}

	now := time.Now()
	for id, p := range r.items {
		switch {
		case selected[id]:
			cid := campaignID
			p.CampaignID = &cid
			p.UpdatedAt = now
		case p.CampaignID != nil && *p.CampaignID == campaignID:
			p.CampaignID = nil
			p.UpdatedAt = now
		}
	}
	return nil
}

func (r *promotionRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return models.ErrPromotionNotFound
	}
	p.ViewsCount++
	return nil
}

func (r *promotionRepository) IncrementSaves(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return models.ErrPromotionNotFound
	}
	p.SavesCount++
	return nil
}
