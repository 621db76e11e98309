package booking

import (
	"context"

	"ceremo/models"
)

// GetByID returns a booking the actor is a party to.
func (s *DefaultBookingService) GetByID(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actor.ID && booking.ProviderID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, &NotAuthorizedError{ActorID: actor.ID, BookingID: id, Operation: "read"}
	}
	return booking, nil
}

// ListForActor returns the actor's bookings: as customer for customers, as
// the service side for providers.
func (s *DefaultBookingService) ListForActor(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	switch actor.Role {
	case models.RoleProvider:
		return s.Repo.ListByProvider(ctx, actor.ID)
	default:
		return s.Repo.ListByCustomer(ctx, actor.ID)
	}
}
