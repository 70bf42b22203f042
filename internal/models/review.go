package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a consumer rating of a business. The service surface is
// read-only: reviews are displayed on the business profile, never mutated
// through the API.
type Review struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusinessID       primitive.ObjectID `json:"business_id" bson:"business_id" validate:"required"`
	UserID           primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	UserName         string             `json:"user_name" bson:"user_name"`
	UserAvatarURL    string             `json:"user_avatar,omitempty" bson:"user_avatar,omitempty"`
	Rating           int                `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment          string             `json:"comment" bson:"comment"`
	VerifiedPurchase bool               `json:"verified_purchase" bson:"verified_purchase" default:"false"`
	BusinessReply    string             `json:"business_reply,omitempty" bson:"business_reply,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
