package interfaces

import (
	"context"
	"time"

	"localdeals/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromotionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, promotion *models.Promotion) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error)
	GetByCode(ctx context.Context, code string) (*models.Promotion, error)
	List(ctx context.Context) ([]*models.Promotion, error)
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Promotion, error)
	ListByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Promotion, error)
	DeleteByBusiness(ctx context.Context, businessID primitive.ObjectID) error

	// Inventory state machine
	SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Promotion, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PromotionStatus) (*models.Promotion, error)

	// Redeem atomically consumes one unit for the promotion matching the
	// normalized code. The decrement, the redemption counter increment and
	// any sold_out transition commit as one indivisible update; concurrent
	// scans of a single remaining unit yield one success and one
	// models.ErrOutOfStock. Failures perform no mutation and are reported as
	// models.ErrCodeNotFound, models.ErrPromotionExpired or
	// models.ErrOutOfStock.
	Redeem(ctx context.Context, code string, now time.Time) (*models.Promotion, error)

	// SetCampaignProducts reconciles campaign membership against the full
	// desired set: listed promotions point at the campaign, current members
	// missing from the list are unlinked, everything else is untouched.
	SetCampaignProducts(ctx context.Context, campaignID primitive.ObjectID, promotionIDs []primitive.ObjectID) error

	// Engagement counters (monotonically non-decreasing)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	IncrementSaves(ctx context.Context, id primitive.ObjectID) error
}
