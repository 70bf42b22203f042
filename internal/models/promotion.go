package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuantityKind string
type PromotionStatus string

const (
	QuantityUnlimited QuantityKind = "unlimited"
	QuantityLimited   QuantityKind = "limited"

	PromotionStatusActive  PromotionStatus = "active"
	PromotionStatusPaused  PromotionStatus = "paused"
	PromotionStatusSoldOut PromotionStatus = "sold_out"
	PromotionStatusExpired PromotionStatus = "expired"
)

type Promotion struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BusinessID       primitive.ObjectID  `json:"business_id" bson:"business_id" validate:"required"`
	CampaignID       *primitive.ObjectID `json:"campaign_id,omitempty" bson:"campaign_id,omitempty"`
	ProductName      string              `json:"product_name" bson:"product_name" validate:"required"`
	Description      string              `json:"description,omitempty" bson:"description,omitempty"`
	Category         string              `json:"category" bson:"category" validate:"required"`
	PriceBefore      float64             `json:"price_before" bson:"price_before" validate:"required,gt=0"`
	PriceNow         float64             `json:"price_now" bson:"price_now" validate:"required,gt=0"`
	DiscountPercent  int                 `json:"discount_percent" bson:"discount_percent"`
	Quantity         QuantityKind        `json:"quantity" bson:"quantity" default:"unlimited"`
	StockCount       int                 `json:"stock_count" bson:"stock_count" default:"0"`
	ValidUntil       time.Time           `json:"valid_until" bson:"valid_until" validate:"required"`
	PhotoURL         string              `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	QRCode           string              `json:"qr_code" bson:"qr_code" validate:"required"`
	Status           PromotionStatus     `json:"status" bson:"status" default:"active"`
	ViewsCount       int64               `json:"views_count" bson:"views_count" default:"0"`
	SavesCount       int64               `json:"saves_count" bson:"saves_count" default:"0"`
	RedemptionsCount int64               `json:"redemptions_count" bson:"redemptions_count" default:"0"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
}

// NormalizeCode canonicalizes a redemption code. It is applied both when a
// promotion is created and when a scanned code is looked up, so codes stay
// matchable regardless of how they were typed.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ComputeDiscountPercent derives the stored discount from the two prices. The
// value is computed once at creation and never recomputed on redemption.
func ComputeDiscountPercent(priceBefore, priceNow float64) int {
	if priceBefore <= 0 {
		return 0
	}
	return int(math.Round((priceBefore - priceNow) / priceBefore * 100))
}

func (p *Promotion) IsLimited() bool {
	return p.Quantity == QuantityLimited
}

// IsExpired derives expiry from valid_until at read time. The stored status
// field is never rewritten to expired.
func (p *Promotion) IsExpired(now time.Time) bool {
	return now.After(p.ValidUntil)
}

// EffectiveStatus is the consumer-facing status: expired wins over whatever
// is stored once valid_until has passed.
func (p *Promotion) EffectiveStatus(now time.Time) PromotionStatus {
	if p.IsExpired(now) {
		return PromotionStatusExpired
	}
	return p.Status
}

// IsRedeemable reports whether a scan of this promotion could succeed right now.
func (p *Promotion) IsRedeemable(now time.Time) bool {
	if p.IsExpired(now) {
		return false
	}
	if p.IsLimited() && p.StockCount <= 0 {
		return false
	}
	return true
}
