package services

import (
	"context"
	"io"
	"testing"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/repositories/memory"
	"localdeals/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

// fakeCache is an in-memory CacheService for tests.
type fakeCache struct {
	sets map[string]map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{sets: make(map[string]map[string]bool)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (f *fakeCache) SAdd(ctx context.Context, key string, members ...interface{}) error {
	if f.sets[key] == nil {
		f.sets[key] = make(map[string]bool)
	}
	for _, m := range members {
		f.sets[key][m.(string)] = true
	}
	return nil
}

func (f *fakeCache) SRem(ctx context.Context, key string, members ...interface{}) error {
	for _, m := range members {
		delete(f.sets[key], m.(string))
	}
	return nil
}

func (f *fakeCache) SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	return f.sets[key][member.(string)], nil
}

func (f *fakeCache) SMembers(ctx context.Context, key string) ([]string, error) {
	out := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func seedPromotion(t *testing.T, repo interfaces.PromotionRepository, mutate func(*models.Promotion)) *models.Promotion {
	t.Helper()
	p := &models.Promotion{
		BusinessID:  primitive.NewObjectID(),
		ProductName: "Pão Francês kg",
		Category:    "padaria",
		PriceBefore: 15.90,
		PriceNow:    9.90,
		Quantity:    models.QuantityUnlimited,
		ValidUntil:  time.Now().Add(24 * time.Hour),
		QRCode:      "PROMO-" + primitive.NewObjectID().Hex()[18:],
		Status:      models.PromotionStatusActive,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func newPromotionFixtures(t *testing.T) (*PromotionService, interfaces.PromotionRepository, interfaces.CampaignRepository, *fakeCache) {
	t.Helper()
	promotions := memory.NewPromotionRepository()
	campaigns := memory.NewCampaignRepository()
	cache := newFakeCache()
	svc := NewPromotionService(promotions, campaigns, cache, testLogger(t))
	return svc, promotions, campaigns, cache
}
