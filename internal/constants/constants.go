package constants

// Session and context keys
const (
	SessionCookieName    = "ecosort_session"
	ContextKeyEmployeeID = "employee_id"
	ContextKeyRole       = "employee_role"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Password policy
const (
	MinPasswordLength = 8
)

// RecipientAll is the sentinel recipient for broadcast notifications.
const RecipientAll = "all"
