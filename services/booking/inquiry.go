package booking

import (
	"context"
	"errors"

	bookingRepo "ceremo/database/repository/booking"
	"ceremo/models"
)

// OpenInquiry starts a pre-booking conversation between the customer and a
// provider. The message thread itself lives in the chat subsystem.
func (s *DefaultBookingService) OpenInquiry(ctx context.Context, actor models.Actor, providerID, subject string) (*models.InquiryConversation, error) {
	if actor.Role != models.RoleCustomer {
		return nil, &NotAuthorizedError{ActorID: actor.ID, Operation: "open inquiry"}
	}
	if _, err := s.ProviderRepo.GetByID(ctx, providerID); err != nil {
		return nil, err
	}

	conversation := &models.InquiryConversation{
		ProviderID: providerID,
		CustomerID: actor.ID,
		Subject:    subject,
	}
	if err := s.InquiryRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	s.publish(ctx, "inquiry", conversation.ID, "created")
	return conversation, nil
}

// GetInquiry returns a conversation the actor is a party to.
func (s *DefaultBookingService) GetInquiry(ctx context.Context, actor models.Actor, conversationID string) (*models.InquiryConversation, error) {
	conversation, err := s.InquiryRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.CustomerID != actor.ID && conversation.ProviderID != actor.ID {
		return nil, &NotAuthorizedError{ActorID: actor.ID, Operation: "read inquiry"}
	}
	return conversation, nil
}

// ConvertInquiryToBooking promotes an open conversation into a pending
// booking. The booking insert and the conversation flip happen in one
// transaction; a conversation converts exactly once, and retrying a
// converted one surfaces the existing booking ID.
func (s *DefaultBookingService) ConvertInquiryToBooking(ctx context.Context, actor models.Actor, conversationID string, input CreateBookingInput) (*models.Booking, error) {
	conversation, err := s.InquiryRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleCustomer || conversation.CustomerID != actor.ID {
		return nil, &NotAuthorizedError{ActorID: actor.ID, Operation: "convert inquiry"}
	}
	if conversation.Status == models.InquiryStatusConverted {
		return nil, &AlreadyConvertedError{ConversationID: conversationID, BookingID: conversation.BookingID}
	}

	input.ProviderID = conversation.ProviderID
	booking, err := s.buildBooking(actor.ID, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkBookable(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateWithInquiryConversion(ctx, booking, conversationID); err != nil {
		if errors.Is(err, bookingRepo.ErrInquiryNotOpen) {
			// Lost a race to another conversion; report the winner's booking.
			current, getErr := s.InquiryRepo.GetByID(ctx, conversationID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &AlreadyConvertedError{ConversationID: conversationID, BookingID: current.BookingID}
		}
		return nil, err
	}

	s.notifyProvider(ctx, booking.ProviderID, models.EventInquiryConverted,
		"Inquiry converted to booking", "A conversation was converted into a booking request.",
		map[string]string{"bookingId": booking.ID, "conversationId": conversationID})
	s.publish(ctx, "inquiry", conversationID, "updated")
	s.publish(ctx, "booking", booking.ID, "created")
	s.scheduleReminder(booking)

	return booking, nil
}
