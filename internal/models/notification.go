package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	BusinessID  primitive.ObjectID  `json:"business_id" bson:"business_id"`
	PromotionID *primitive.ObjectID `json:"promotion_id,omitempty" bson:"promotion_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Body        string              `json:"body" bson:"body"`
	SentAt      time.Time           `json:"sent_at" bson:"sent_at"`
	Read        bool                `json:"read" bson:"read" default:"false"`
}
