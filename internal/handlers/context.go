package handlers

import (
	"localdeals/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userIDFromContext extracts the authenticated user's ID set by the auth
// middleware. Writes the error response itself when missing.
func userIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	id, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return id, true
}

// businessIDFromContext resolves the merchant identity. Business accounts
// carry their business document ID as the token subject.
func businessIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	return userIDFromContext(c)
}
