package booking

import (
	"fmt"
	"strings"
)

// InvalidTransitionError is returned when a state change is not permitted
// from the booking's current status.
type InvalidTransitionError struct {
	BookingID string
	From      string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for booking %s: %s -> %s", e.BookingID, e.From, e.To)
}

// OutOfOrderError is returned when a completion-protocol step is attempted
// before its prerequisite step (customer verification before the provider's
// mark-complete).
type OutOfOrderError struct {
	BookingID string
	Step      string
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("completion step %q out of order for booking %s", e.Step, e.BookingID)
}

// UnbookableError is returned when one or more requested dates fail the
// provider's availability rules.
type UnbookableError struct {
	ProviderID string
	Dates      []string
}

func (e *UnbookableError) Error() string {
	return fmt.Sprintf("provider %s is not bookable on %s", e.ProviderID, strings.Join(e.Dates, ", "))
}

// AlreadyConvertedError is returned when an inquiry conversion is attempted
// twice. It carries the existing booking ID so callers can treat the retry
// as a soft no-op.
type AlreadyConvertedError struct {
	ConversationID string
	BookingID      string
}

func (e *AlreadyConvertedError) Error() string {
	return fmt.Sprintf("inquiry %s already converted to booking %s", e.ConversationID, e.BookingID)
}

// NotAuthorizedError is returned when the actor is neither the booking's
// customer nor its provider as the attempted operation demands.
type NotAuthorizedError struct {
	ActorID   string
	BookingID string
	Operation string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("actor %s is not authorized to %s booking %s", e.ActorID, e.Operation, e.BookingID)
}
