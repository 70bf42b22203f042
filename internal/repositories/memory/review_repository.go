package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Review
}

func NewReviewRepository() interfaces.ReviewRepository {
	return &reviewRepository{
		items: make(map[primitive.ObjectID]*models.Review),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	cp := *review
	r.items[review.ID] = &cp
	return nil
}

func (r *reviewRepository) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Review
	for _, review := range r.items {
		if review.BusinessID == businessID {
			cp := *review
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *reviewRepository) DeleteByBusiness(ctx context.Context, businessID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, review := range r.items {
		if review.BusinessID == businessID {
			delete(r.items, id)
		}
	}
	return nil
}
