package constants

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Auth
const (
	MinPasswordLength     = 8
	AccessTokenTTLMinutes = 60 * 24
)
