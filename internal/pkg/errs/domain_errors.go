package errs

import "errors"

// Domain-specific sentinel errors shared by the command and query layers.
// Relational authorization failures deliberately read as not-found so the
// API leaks no existence information.
var (
	// Not-found family
	ErrUserNotFound     = errors.New("user not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRequestNotFound  = errors.New("request not found")
	ErrOwnerBooking     = errors.New("item owner and booker are equal")
	ErrNotOwner         = errors.New("this item has another owner")
	ErrNotOwnerOrBooker = errors.New("this item has another owner or another booker")

	// Invalid-request family
	ErrItemUnavailable   = errors.New("item is unavailable")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrNoFinishedBooking = errors.New("no finished booking for this item")

	// Conflict
	ErrEmailTaken = errors.New("email is already in use")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
