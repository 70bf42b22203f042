package utils

import "time"

// Application Constants
const (
	AppName    = "LocalDeals"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Discovery feed
	DefaultFeedRadiusKM = 20.0
	MaxFeedRadiusKM     = 50.0
	MetersPerKilometer  = 1000.0

	// Redemption codes
	PromoCodePrefix      = "PROMO-"
	PromoCodeSuffixChars = 6
	PromoCodeMaxRetries  = 5

	// Bulk import
	DefaultImportValidityDays = 7
	DefaultImportCategory     = "outros"

	// Cache TTLs
	PromotionCacheTTL = 30 * time.Minute
	FeedCacheTTL      = 1 * time.Minute
)

// Geographic Constants
const (
	EarthRadiusKM     = 6371.0
	EarthRadiusMeters = 6371000.0
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrValidationFailed = "validation failed"
)

// User roles carried in JWT claims.
const (
	RoleUser     = "user"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)
