package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Calendar and event errors
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrEventConflict    = errors.New("event conflicts with an existing event")
	ErrEventNotEditable = errors.New("event is not editable")
	ErrNotAnAttendee    = errors.New("user is not an attendee of the event")
	ErrInvalidTimeSlot  = errors.New("invalid time slot")

	// Rule errors
	ErrRuleNotFound = errors.New("rule not found")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotUnavailable = errors.New("slot is not available for booking")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation       = errors.New("domain validation error")
	ErrDomainValidationFailed = errors.New("domain validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
