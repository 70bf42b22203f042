package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanType string

const (
	PlanTypeFree       PlanType = "free"
	PlanTypeBasic      PlanType = "basic"
	PlanTypePro        PlanType = "pro"
	PlanTypeEnterprise PlanType = "enterprise"
)

type Business struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Category      string             `json:"category" bson:"category" validate:"required"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Address       string             `json:"address" bson:"address"`
	City          string             `json:"city" bson:"city"`
	State         string             `json:"state" bson:"state"`
	LogoURL       string             `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	CoverPhotoURL string             `json:"cover_photo_url,omitempty" bson:"cover_photo_url,omitempty"`
	Rating        float64            `json:"rating" bson:"rating" default:"0"`
	TotalReviews  int                `json:"total_reviews" bson:"total_reviews" default:"0"`
	WhatsApp      string             `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Verified      bool               `json:"verified" bson:"verified" default:"false"`
	PlanType      PlanType           `json:"plan_type" bson:"plan_type" default:"free"`
	Latitude      *float64           `json:"lat,omitempty" bson:"lat,omitempty"`
	Longitude     *float64           `json:"lng,omitempty" bson:"lng,omitempty"`
	// DistanceMeters is a static pre-recorded distance used when the
	// consumer's live location is unavailable.
	DistanceMeters float64   `json:"distance,omitempty" bson:"distance,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *Business) HasCoordinates() bool {
	return b != nil && b.Latitude != nil && b.Longitude != nil
}
