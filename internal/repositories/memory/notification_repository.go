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

type notificationRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*models.Notification
}

func NewNotificationRepository() interfaces.NotificationRepository {
	return &notificationRepository{
		items: make(map[primitive.ObjectID]*models.Notification),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.SentAt.IsZero() {
		notification.SentAt = time.Now()
	}

	cp := *notification
	r.items[notification.ID] = &cp
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SentAt.After(out[j].SentAt)
	})
	return out, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return models.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (r *notificationRepository) ClearForUser(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.items {
		if n.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}
