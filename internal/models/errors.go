package models

import "errors"

// Domain errors. All are non-fatal and locally recoverable by the caller.
var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrCodeNotFound      = errors.New("no promotion matches this code")
	ErrPromotionExpired  = errors.New("promotion has expired")
	ErrOutOfStock        = errors.New("promotion is out of stock")
	ErrDuplicateCode     = errors.New("redemption code already in use")
	ErrInvalidPricing    = errors.New("promotional price must be below the original price")

	ErrBusinessNotFound = errors.New("business not found")

	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrInvalidCampaignRef is returned when a promotion would be linked to a
	// campaign that does not exist or belongs to another business.
	ErrInvalidCampaignRef = errors.New("campaign reference is invalid for this business")

	ErrNotificationNotFound = errors.New("notification not found")
)
