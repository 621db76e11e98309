package payment

import (
	"context"
	"errors"
	"fmt"

	"ceremo/config"
	"ceremo/models"
	"ceremo/services/booking"
	"ceremo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestPayment raises a provider payment request against an accepted
// booking. If the booking already has an outstanding pending request, that
// request is edited in place rather than duplicated.
func (s *DefaultPaymentService) RequestPayment(ctx context.Context, actor models.Actor, bookingID string, input RequestPaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	if input.PaymentType == "" {
		input.PaymentType = models.PaymentTypeBalance
	}

	bk, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleProvider || bk.ProviderID != actor.ID {
		return nil, &booking.NotAuthorizedError{ActorID: actor.ID, BookingID: bookingID, Operation: "request payment"}
	}
	if bk.Status != models.BookingStatusAccepted {
		return nil, &booking.InvalidTransitionError{BookingID: bookingID, From: bk.Status, To: "payment_requested"}
	}

	existing, err := s.Repo.GetPendingProviderRequest(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var pay *models.Payment
	if existing != nil {
		if err := s.Repo.UpdatePendingRequest(ctx, existing.ID, input.Amount, input.PaymentType, input.Description); err != nil {
			return nil, err
		}
		pay, err = s.Repo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
	} else {
		pay = &models.Payment{
			ID:                  uuid.New().String(),
			BookingID:           bookingID,
			Amount:              input.Amount,
			Currency:            config.AppConfig.Currency,
			Status:              models.PaymentStatusPending,
			IsProviderRequested: true,
			PaymentType:         input.PaymentType,
			Description:         input.Description,
		}
		if err := s.Repo.Create(ctx, pay); err != nil {
			return nil, err
		}
	}

	s.notifyCustomer(ctx, bk.CustomerID, models.EventPaymentRequested,
		"Payment requested",
		fmt.Sprintf("The provider requested a payment of %.2f %s.", pay.Amount, pay.Currency),
		map[string]string{"bookingId": bookingID, "paymentId": pay.ID})
	s.publish(ctx, pay.ID, "updated")

	return pay, nil
}

// VerifyPayment resolves the gateway proof and settles the pending payment.
// Completed and failed are final; verifying a settled payment is rejected.
func (s *DefaultPaymentService) VerifyPayment(ctx context.Context, actor models.Actor, paymentID, gatewayRef string) (*models.Payment, error) {
	pay, err := s.Repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	bk, err := s.BookingRepo.GetByID(ctx, pay.BookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleCustomer || bk.CustomerID != actor.ID {
		return nil, &booking.NotAuthorizedError{ActorID: actor.ID, BookingID: pay.BookingID, Operation: "verify payment"}
	}

	if pay.Status != models.PaymentStatusPending {
		return nil, fmt.Errorf("payment %s is already %s", paymentID, pay.Status)
	}
	if gatewayRef == "" {
		return nil, errors.New("missing gateway reference")
	}

	status, err := s.Gateway.IntentStatus(ctx, gatewayRef)
	if err != nil {
		return nil, fmt.Errorf("gateway verification failed for payment %s: %w", paymentID, err)
	}

	switch status {
	case "succeeded":
		if err := s.Repo.SetOutcome(ctx, paymentID, models.PaymentStatusCompleted, gatewayRef, ""); err != nil {
			return nil, err
		}
		s.notifyProvider(ctx, bk.ProviderID, models.EventPaymentCompleted,
			"Payment received", "A payment on your booking was completed.",
			map[string]string{"bookingId": pay.BookingID, "paymentId": paymentID})
	case "canceled", "requires_payment_method":
		if err := s.Repo.SetOutcome(ctx, paymentID, models.PaymentStatusFailed, gatewayRef, "gateway status: "+status); err != nil {
			return nil, err
		}
		s.notifyCustomer(ctx, bk.CustomerID, models.EventPaymentFailed,
			"Payment failed", "Your payment did not go through. Please try again.",
			map[string]string{"bookingId": pay.BookingID, "paymentId": paymentID})
	default:
		return nil, fmt.Errorf("payment %s not settled at gateway (status %q)", paymentID, status)
	}

	s.publish(ctx, paymentID, "updated")
	return s.Repo.GetByID(ctx, paymentID)
}

// ListForBooking returns a booking's payment history to one of its parties.
func (s *DefaultPaymentService) ListForBooking(ctx context.Context, actor models.Actor, bookingID string) ([]models.Payment, error) {
	bk, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.CustomerID != actor.ID && bk.ProviderID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, &booking.NotAuthorizedError{ActorID: actor.ID, BookingID: bookingID, Operation: "list payments"}
	}
	return s.Repo.ListByBooking(ctx, bookingID)
}

func (s *DefaultPaymentService) notifyCustomer(ctx context.Context, customerID, event, title, body string, data map[string]string) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.NotifyCustomer(ctx, customerID, event, title, body, data); err != nil {
		utils.GetLogger().Warn("customer notification failed",
			zap.String("customerID", customerID), zap.String("event", event), zap.Error(err))
	}
}

func (s *DefaultPaymentService) notifyProvider(ctx context.Context, providerID, event, title, body string, data map[string]string) {
	if s.NotificationSvc == nil {
		return
	}
	if err := s.NotificationSvc.NotifyProvider(ctx, providerID, event, title, body, data); err != nil {
		utils.GetLogger().Warn("provider notification failed",
			zap.String("providerID", providerID), zap.String("event", event), zap.Error(err))
	}
}

func (s *DefaultPaymentService) publish(ctx context.Context, id, action string) {
	if s.Feed == nil {
		return
	}
	s.Feed.Publish(ctx, models.ChangeEvent{Entity: "payment", ID: id, Action: action})
}
