package constants

// Order statuses
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"

	// OrderStatusCheckoutPending is written by cart checkout; existing clients read the lower-case literal.
	OrderStatusCheckoutPending = "pending"
)

// NonCancellableOrderStatuses statuses that reject a cancel request
var NonCancellableOrderStatuses = []string{
	OrderStatusCancelled,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Payment modes
const (
	PaymentModeCOD    = "COD"
	PaymentModeOnline = "ONLINE"
)

// User roles
const (
	RoleCustomer = "customer"
)

// Product categories
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
)

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
