package booking

import (
	"context"

	bookingRepo "ceremo/database/repository/booking"
	completionRepo "ceremo/database/repository/completion"
	inquiryRepo "ceremo/database/repository/inquiry"
	providerRepo "ceremo/database/repository/provider"
	"ceremo/models"
	"ceremo/services/availability"
	"ceremo/services/notification"
	"ceremo/services/realtime"
	"ceremo/services/tasks"
)

// CreateBookingInput carries the customer's booking request. Multi-day
// bookings set StartDate and EndDate; single-day bookings set ServiceDate.
type CreateBookingInput struct {
	ProviderID          string `json:"providerId"`
	ServiceDate         string `json:"serviceDate"`
	StartDate           string `json:"startDate,omitempty"`
	EndDate             string `json:"endDate,omitempty"`
	ServiceTime         string `json:"serviceTime,omitempty"`
	Message             string `json:"message,omitempty"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
}

// CompletionInput is the provider's work summary submitted at mark-complete.
type CompletionInput struct {
	WorkSummary string   `json:"workSummary"`
	ItemsUsed   []string `json:"itemsUsed,omitempty"`
	HoursWorked float64  `json:"hoursWorked,omitempty"`
}

// BookingService governs the booking lifecycle: creation, the
// accept/reject/cancel transitions, the two-party completion handshake, and
// inquiry-to-booking conversion. Every mutation takes the acting party
// explicitly and rejects callers the transition does not belong to.
type BookingService interface {
	Create(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListForActor(ctx context.Context, actor models.Actor) ([]models.Booking, error)

	Accept(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Reject(ctx context.Context, actor models.Actor, bookingID, reason string) (*models.Booking, error)
	Cancel(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)

	MarkComplete(ctx context.Context, actor models.Actor, bookingID string, input CompletionInput) (*models.Booking, error)
	VerifyComplete(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	Dispute(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	GetCompletionDetails(ctx context.Context, actor models.Actor, bookingID string) (*models.CompletionDetails, error)

	OpenInquiry(ctx context.Context, actor models.Actor, providerID, subject string) (*models.InquiryConversation, error)
	GetInquiry(ctx context.Context, actor models.Actor, conversationID string) (*models.InquiryConversation, error)
	ConvertInquiryToBooking(ctx context.Context, actor models.Actor, conversationID string, input CreateBookingInput) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo            bookingRepo.BookingRepository
	InquiryRepo     inquiryRepo.InquiryRepository
	CompletionRepo  completionRepo.CompletionRepository
	ProviderRepo    providerRepo.ProviderRepository
	AvailabilitySvc availability.AvailabilityService
	NotificationSvc notification.NotificationService
	Feed            realtime.Publisher
	Reminders       tasks.ReminderScheduler
}
