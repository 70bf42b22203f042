package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCloneAsDraft(t *testing.T) {
	created := time.Now().Add(-48 * time.Hour)
	original := &Campaign{
		ID:         primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		Title:      "Semana do Hortifruti",
		Status:     CampaignStatusActive,
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	now := time.Now()
	clone := original.CloneAsDraft(now)

	assert.NotEqual(t, original.ID, clone.ID)
	assert.Equal(t, "Semana do Hortifruti (Cópia)", clone.Title)
	assert.Equal(t, CampaignStatusDraft, clone.Status)
	assert.Equal(t, original.BusinessID, clone.BusinessID)
	assert.Equal(t, now, clone.CreatedAt)

	// The source campaign is untouched.
	assert.Equal(t, CampaignStatusActive, original.Status)
	assert.Equal(t, "Semana do Hortifruti", original.Title)
}
