package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "draft"
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusPaused CampaignStatus = "paused"
	CampaignStatusEnded  CampaignStatus = "ended"
)

// DuplicateTitleSuffix marks a duplicated campaign's title.
const DuplicateTitleSuffix = " (Cópia)"

type Campaign struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusinessID  primitive.ObjectID `json:"business_id" bson:"business_id" validate:"required"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   time.Time          `json:"start_date" bson:"start_date"`
	EndDate     time.Time          `json:"end_date" bson:"end_date"`
	Status      CampaignStatus     `json:"status" bson:"status" default:"draft"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CloneAsDraft copies the campaign for duplication: fresh identity, title
// suffixed, status forced to draft, fresh creation timestamp. Product
// associations are intentionally not carried over; the clone starts with zero
// linked promotions.
func (c *Campaign) CloneAsDraft(now time.Time) *Campaign {
	clone := *c
	clone.ID = primitive.NewObjectID()
	clone.Title = c.Title + DuplicateTitleSuffix
	clone.Status = CampaignStatusDraft
	clone.CreatedAt = now
	clone.UpdatedAt = now
	return &clone
}
