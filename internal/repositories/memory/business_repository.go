package memory

import (
	"context"
	"sync"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type businessRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Business
}

func NewBusinessRepository() interfaces.BusinessRepository {
	return &businessRepository{
		items: make(map[primitive.ObjectID]*models.Business),
	}
}

func cloneBusiness(b *models.Business) *models.Business {
	cb := *b
	if b.Latitude != nil {
		lat := *b.Latitude
		cb.Latitude = &lat
	}
	if b.Longitude != nil {
		lng := *b.Longitude
		cb.Longitude = &lng
	}
	return &cb
}

func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if business.ID.IsZero() {
		business.ID = primitive.NewObjectID()
	}
	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	r.items[business.ID] = cloneBusiness(business)
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, models.ErrBusinessNotFound
	}
	return cloneBusiness(b), nil
}

func (r *businessRepository) List(ctx context.Context) ([]*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Business, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, cloneBusiness(b))
	}
	return out, nil
}

func (r *businessRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return models.ErrBusinessNotFound
	}

	for field, value := range updates {
		switch field {
		case "name":
			b.Name, _ = value.(string)
		case "description":
			b.Description, _ = value.(string)
		case "address":
			b.Address, _ = value.(string)
		case "city":
			b.City, _ = value.(string)
		case "state":
			b.State, _ = value.(string)
		case "whatsapp":
			b.WhatsApp, _ = value.(string)
		case "phone":
			b.Phone, _ = value.(string)
		case "lat":
			if lat, ok := value.(float64); ok {
				b.Latitude = &lat
			}
		case "lng":
			if lng, ok := value.(float64); ok {
				b.Longitude = &lng
			}
		}
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (r *businessRepository) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok {
		return models.ErrBusinessNotFound
	}
	b.Verified = verified
	b.UpdatedAt = time.Now()
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return models.ErrBusinessNotFound
	}
	delete(r.items, id)
	return nil
}
