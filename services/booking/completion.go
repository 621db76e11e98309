package booking

import (
	"context"
	"errors"

	bookingRepo "ceremo/database/repository/booking"
	completionRepo "ceremo/database/repository/completion"
	"ceremo/models"
	"ceremo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MarkComplete is the provider's half of the completion handshake: it flips
// the provider confirmation flag, moves completion status to pending customer
// verification and records the work summary. The booking stays accepted
// until the customer verifies.
func (s *DefaultBookingService) MarkComplete(ctx context.Context, actor models.Actor, bookingID string, input CompletionInput) (*models.Booking, error) {
	booking, err := s.authorizeProvider(ctx, actor, bookingID, "mark complete")
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusAccepted {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.BookingStatusCompleted}
	}
	if booking.CompletionConfirmedByProvider {
		return nil, &OutOfOrderError{BookingID: bookingID, Step: "mark_complete"}
	}

	if err := s.Repo.MarkProviderComplete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			return nil, &OutOfOrderError{BookingID: bookingID, Step: "mark_complete"}
		}
		return nil, err
	}

	details := models.CompletionDetails{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		ProviderID:  booking.ProviderID,
		WorkSummary: input.WorkSummary,
		ItemsUsed:   input.ItemsUsed,
		HoursWorked: input.HoursWorked,
	}
	if _, err := s.CompletionRepo.Create(ctx, details); err != nil && !errors.Is(err, completionRepo.ErrAlreadyExists) {
		utils.GetLogger().Error("failed to store completion details",
			zap.String("bookingID", bookingID), zap.Error(err))
		return nil, err
	}

	s.notifyCustomer(ctx, booking.CustomerID, models.EventVerificationAwaited,
		"Please verify completed work", "The provider marked your booking as complete. Please verify the work.",
		map[string]string{"bookingId": bookingID})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// VerifyComplete is the customer's half of the handshake: it requires the
// provider to have gone first, completes the booking and marks completion
// verified. The customer becomes review-eligible.
func (s *DefaultBookingService) VerifyComplete(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.authorizeCustomer(ctx, actor, bookingID, "verify completion")
	if err != nil {
		return nil, err
	}
	if !booking.CompletionConfirmedByProvider {
		return nil, &OutOfOrderError{BookingID: bookingID, Step: "verify_complete"}
	}
	if booking.Status != models.BookingStatusAccepted || booking.CompletionStatus != models.CompletionStatusPending {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.BookingStatusCompleted}
	}

	if err := s.Repo.ConfirmCustomerComplete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			current, getErr := s.Repo.GetByID(ctx, bookingID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &InvalidTransitionError{BookingID: bookingID, From: current.Status, To: models.BookingStatusCompleted}
		}
		return nil, err
	}

	s.notifyProvider(ctx, booking.ProviderID, models.EventBookingCompleted,
		"Booking completed", "The customer verified the completed work.",
		map[string]string{"bookingId": bookingID})
	s.notifyCustomer(ctx, booking.CustomerID, models.EventBookingCompleted,
		"Booking completed", "Thanks for verifying. You can now review the provider.",
		map[string]string{"bookingId": bookingID, "reviewEligible": "true"})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// Dispute records that the customer contests the provider's completion
// claim. The booking stays accepted; resolution moves to support and no
// further automated completion steps apply.
func (s *DefaultBookingService) Dispute(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.authorizeCustomer(ctx, actor, bookingID, "dispute")
	if err != nil {
		return nil, err
	}
	if !booking.CompletionConfirmedByProvider {
		return nil, &OutOfOrderError{BookingID: bookingID, Step: "dispute"}
	}
	if booking.CompletionStatus != models.CompletionStatusPending {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.CompletionStatusDisputed}
	}

	if err := s.Repo.MarkDisputed(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
			return nil, &OutOfOrderError{BookingID: bookingID, Step: "dispute"}
		}
		return nil, err
	}

	s.notifyProvider(ctx, booking.ProviderID, models.EventBookingDisputed,
		"Completion disputed", "The customer disputed the completed work. Support will follow up.",
		map[string]string{"bookingId": bookingID})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// GetCompletionDetails returns the provider's work summary for a booking the
// actor is a party to.
func (s *DefaultBookingService) GetCompletionDetails(ctx context.Context, actor models.Actor, bookingID string) (*models.CompletionDetails, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actor.ID && booking.ProviderID != actor.ID {
		return nil, &NotAuthorizedError{ActorID: actor.ID, BookingID: bookingID, Operation: "read completion details"}
	}
	return s.CompletionRepo.GetByBookingID(ctx, bookingID)
}
