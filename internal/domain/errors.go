package domain

import "errors"

// Validation
var (
	ErrEmptyOrder          = errors.New("order has no items")
	ErrMissingTableNumber  = errors.New("table number is required for dine-in orders")
	ErrMissingDeliveryInfo = errors.New("customer name, address and location are required for delivery orders")
	ErrInvalidOrderType    = errors.New("invalid order type")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
	ErrItemNotInCart       = errors.New("product is not in the cart")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidTime         = errors.New("invalid time of day, expected HH:MM")
)

// Lookup
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrReportNotFound   = errors.New("report not found")
)

var (
	ErrStatusConflict      = errors.New("order status changed concurrently")
	ErrDuplicateSubmission = errors.New("submission with this idempotency key is still in progress")
	ErrEmailTaken          = errors.New("e-mail already belongs to another employee")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrQueueUnavailable    = errors.New("report queue is not configured")
)
