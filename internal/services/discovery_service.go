package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"localdeals/internal/models"
	"localdeals/internal/repositories/interfaces"
	"localdeals/internal/utils"
	"localdeals/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedSort string

const (
	FeedSortDistance FeedSort = "distance"
	FeedSortDiscount FeedSort = "discount"
	FeedSortPrice    FeedSort = "price"
)

type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type FeedQuery struct {
	// Location is the consumer's live position; nil falls back to each
	// business's static recorded distance.
	Location     *Coordinates
	Category     string
	Search       string
	RadiusMeters float64
	Sort         FeedSort
}

// FeedItem pairs a promotion with its resolved distance from the consumer.
type FeedItem struct {
	Promotion      *models.Promotion `json:"promotion"`
	Business       *models.Business  `json:"business"`
	DistanceMeters float64           `json:"distance_meters"`
}

// DiscoveryService assembles the consumer-facing deal feed.
type DiscoveryService struct {
	promotions interfaces.PromotionRepository
	businesses interfaces.BusinessRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewDiscoveryService(
	promotions interfaces.PromotionRepository,
	businesses interfaces.BusinessRepository,
	log *logger.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		promotions: promotions,
		businesses: businesses,
		logger:     log,
		now:        time.Now,
	}
}

func (s *DiscoveryService) Feed(ctx context.Context, query *FeedQuery) ([]*FeedItem, error) {
	promotions, err := s.promotions.List(ctx)
	if err != nil {
		return nil, err
	}

	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Business, len(businesses))
	for _, business := range businesses {
		byID[business.ID] = business
	}

	return RankFeed(promotions, byID, query, s.now()), nil
}

// RankFeed filters and orders promotions for the feed. Only effectively
// active promotions survive: paused, sold out and past-validity entries are
// dropped regardless of their stored status. Distance resolution prefers a
// live haversine computation over the business's static recorded distance;
// promotions whose distance cannot be resolved at all fail the radius test.
func RankFeed(promotions []*models.Promotion, businesses map[primitive.ObjectID]*models.Business, query *FeedQuery, now time.Time) []*FeedItem {
	radius := query.RadiusMeters
	if radius <= 0 {
		radius = utils.DefaultFeedRadiusKM * utils.MetersPerKilometer
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))

	items := make([]*FeedItem, 0, len(promotions))
	for _, promotion := range promotions {
		if promotion.EffectiveStatus(now) != models.PromotionStatusActive {
			continue
		}
		if query.Category != "" && query.Category != models.CategoryAll && promotion.Category != query.Category {
			continue
		}
		if search != "" && !matchesSearch(promotion, search) {
			continue
		}

		business := businesses[promotion.BusinessID]
		distance, known := resolveDistance(business, query.Location)
		if !known || distance > radius {
			continue
		}

		items = append(items, &FeedItem{
			Promotion:      promotion,
			Business:       business,
			DistanceMeters: distance,
		})
	}

	sortFeed(items, query.Sort)
	return items
}

// matchesSearch tests the search text against the product name only.
func matchesSearch(promotion *models.Promotion, search string) bool {
	return strings.Contains(strings.ToLower(promotion.ProductName), search)
}

// resolveDistance returns the distance in meters and whether it could be
// determined at all.
func resolveDistance(business *models.Business, location *Coordinates) (float64, bool) {
	if business == nil {
		return 0, false
	}
	if location != nil && business.HasCoordinates() {
		meters := utils.CalculateDistanceMeters(
			location.Latitude, location.Longitude,
			*business.Latitude, *business.Longitude,
		)
		return meters, true
	}
	if business.DistanceMeters > 0 {
		return business.DistanceMeters, true
	}
	return 0, false
}

// sortFeed orders items by the requested criterion with the promotion ID as
// a stable tie-break so pagination never shuffles equal entries.
func sortFeed(items []*FeedItem, by FeedSort) {
	less := func(a, b *FeedItem) bool {
		return a.DistanceMeters < b.DistanceMeters
	}

	switch by {
	case FeedSortDiscount:
		less = func(a, b *FeedItem) bool {
			return a.Promotion.DiscountPercent > b.Promotion.DiscountPercent
		}
	case FeedSortPrice:
		less = func(a, b *FeedItem) bool {
			return a.Promotion.PriceNow < b.Promotion.PriceNow
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.Promotion.ID.Hex() < b.Promotion.ID.Hex()
	})
}
