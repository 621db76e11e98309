package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "ceremo/database/repository/booking"
	"ceremo/config"
	"ceremo/models"
	"ceremo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates availability over every covered date and inserts a new
// pending booking. Only customers create bookings.
func (s *DefaultBookingService) Create(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer {
		return nil, &NotAuthorizedError{ActorID: actor.ID, Operation: "create"}
	}

	booking, err := s.buildBooking(actor.ID, input)
	if err != nil {
		return nil, err
	}

	if err := s.checkBookable(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.afterCreate(ctx, booking)
	return booking, nil
}

// Accept transitions pending -> accepted. Provider only.
func (s *DefaultBookingService) Accept(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.authorizeProvider(ctx, actor, bookingID, "accept")
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.BookingStatusAccepted}
	}

	if err := s.transition(ctx, bookingID, models.BookingStatusPending, models.BookingStatusAccepted, ""); err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, booking.CustomerID, models.EventBookingAccepted,
		"Booking accepted", "Your booking request was accepted by the provider.",
		map[string]string{"bookingId": bookingID})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// Reject transitions pending -> rejected with an optional reason. Provider only.
func (s *DefaultBookingService) Reject(ctx context.Context, actor models.Actor, bookingID, reason string) (*models.Booking, error) {
	booking, err := s.authorizeProvider(ctx, actor, bookingID, "reject")
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.BookingStatusRejected}
	}

	if err := s.transition(ctx, bookingID, models.BookingStatusPending, models.BookingStatusRejected, reason); err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, booking.CustomerID, models.EventBookingRejected,
		"Booking rejected", "Your booking request was declined by the provider.",
		map[string]string{"bookingId": bookingID, "reason": reason})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// Cancel transitions pending -> cancelled. Customer only; there is no path
// for either party to cancel an accepted booking.
func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.authorizeCustomer(ctx, actor, bookingID, "cancel")
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, &InvalidTransitionError{BookingID: bookingID, From: booking.Status, To: models.BookingStatusCancelled}
	}

	if err := s.transition(ctx, bookingID, models.BookingStatusPending, models.BookingStatusCancelled, ""); err != nil {
		return nil, err
	}

	s.notifyProvider(ctx, booking.ProviderID, models.EventBookingCancelled,
		"Booking cancelled", "The customer withdrew their booking request.",
		map[string]string{"bookingId": bookingID})
	s.publish(ctx, "booking", bookingID, "updated")

	return s.Repo.GetByID(ctx, bookingID)
}

// --- helpers ---

func (s *DefaultBookingService) buildBooking(customerID string, input CreateBookingInput) (*models.Booking, error) {
	if input.ProviderID == "" {
		return nil, errors.New("providerId is required")
	}

	booking := &models.Booking{
		ID:                  uuid.New().String(),
		CustomerID:          customerID,
		ProviderID:          input.ProviderID,
		ServiceDate:         input.ServiceDate,
		ServiceTime:         input.ServiceTime,
		Message:             input.Message,
		SpecialRequirements: input.SpecialRequirements,
		Status:              models.BookingStatusPending,
		CompletionStatus:    models.CompletionStatusNone,
	}

	if input.StartDate != "" || input.EndDate != "" {
		if input.StartDate == "" || input.EndDate == "" {
			return nil, errors.New("multi-day bookings require both startDate and endDate")
		}
		start, err := time.Parse(utils.DateLayout, input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		end, err := time.Parse(utils.DateLayout, input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		if end.Before(start) {
			return nil, errors.New("endDate precedes startDate")
		}
		booking.StartDate = input.StartDate
		booking.EndDate = input.EndDate
		booking.TotalDays = int(end.Sub(start).Hours()/24) + 1
		booking.ServiceDate = input.StartDate
	} else if input.ServiceDate == "" {
		return nil, errors.New("serviceDate is required")
	} else if _, err := time.Parse(utils.DateLayout, input.ServiceDate); err != nil {
		return nil, fmt.Errorf("invalid serviceDate: %w", err)
	}

	return booking, nil
}

// checkBookable verifies the provider accepts bookings and every covered
// date passes the availability rules. A single blocked date rejects the
// whole range; no partial bookings.
func (s *DefaultBookingService) checkBookable(ctx context.Context, booking *models.Booking) error {
	provider, err := s.ProviderRepo.GetByID(ctx, booking.ProviderID)
	if err != nil {
		return err
	}
	if provider.Status != models.ProviderStatusApproved {
		return fmt.Errorf("provider %s is not approved for bookings", provider.ID)
	}

	blocked, err := s.AvailabilitySvc.UnbookableDates(ctx, booking.ProviderID, booking.Dates())
	if err != nil {
		return err
	}
	if len(blocked) > 0 {
		return &UnbookableError{ProviderID: booking.ProviderID, Dates: blocked}
	}
	return nil
}

func (s *DefaultBookingService) afterCreate(ctx context.Context, booking *models.Booking) {
	s.notifyProvider(ctx, booking.ProviderID, models.EventBookingRequested,
		"New booking request", "You have a new booking request awaiting your response.",
		map[string]string{"bookingId": booking.ID, "serviceDate": booking.ServiceDate})
	s.publish(ctx, "booking", booking.ID, "created")
	s.scheduleReminder(booking)
}

// transition applies a guarded status update, mapping a lost race to the
// InvalidTransition the caller would have seen had it read last.
func (s *DefaultBookingService) transition(ctx context.Context, bookingID, from, to, reason string) error {
	err := s.Repo.SetStatus(ctx, bookingID, from, to, reason)
	if errors.Is(err, bookingRepo.ErrPreconditionFailed) {
		current, getErr := s.Repo.GetByID(ctx, bookingID)
		if getErr != nil {
			return getErr
		}
		return &InvalidTransitionError{BookingID: bookingID, From: current.Status, To: to}
	}
	return err
}

func (s *DefaultBookingService) authorizeProvider(ctx context.Context, actor models.Actor, bookingID, op string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleProvider || booking.ProviderID != actor.ID {
		return nil, &NotAuthorizedError{ActorID: actor.ID, BookingID: bookingID, Operation: op}
	}
	return booking, nil
}

func (s *DefaultBookingService) authorizeCustomer(ctx context.Context, actor models.Actor, bookingID, op string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleCustomer || booking.CustomerID != actor.ID {
		return nil, &NotAuthorizedError{ActorID: actor.ID, BookingID: bookingID, Operation: op}
	}
	return booking, nil
}

// Notifications are fire-and-forget: failures are logged, never propagated.
func (s *DefaultBookingService) notifyCustomer(ctx context.Context, customerID, event, title, body string, data map[string]string) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.NotifyCustomer(ctx, customerID, event, title, body, data); err != nil {
		utils.GetLogger().Warn("customer notification failed",
			zap.String("customerID", customerID), zap.String("event", event), zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyProvider(ctx context.Context, providerID, event, title, body string, data map[string]string) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.NotifyProvider(ctx, providerID, event, title, body, data); err != nil {
		utils.GetLogger().Warn("provider notification failed",
			zap.String("providerID", providerID), zap.String("event", event), zap.Error(err))
	}
}

func (s *DefaultBookingService) publish(ctx context.Context, entity, id, action string) {
	if s.Feed == nil {
		return
	}
	s.Feed.Publish(ctx, models.ChangeEvent{Entity: entity, ID: id, Action: action})
}

func (s *DefaultBookingService) scheduleReminder(booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	hours := config.AppConfig.PendingReminderHours
	if hours <= 0 {
		hours = 24
	}
	fireAt := time.Now().Add(time.Duration(hours) * time.Hour)
	payload := models.ReminderPayload{
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		Title:      "Booking request still pending",
		Body:       "A booking request is still waiting for your response.",
		FireDate:   fireAt.Format(time.RFC3339),
	}
	if err := s.Reminders.SchedulePendingReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule pending reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
