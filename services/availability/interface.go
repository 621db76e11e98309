package availability

import (
	"context"

	"ceremo/models"
)

// AvailabilityService answers date-bookability questions and manages a
// provider's block records.
type AvailabilityService interface {
	// IsDateBookable reports whether the provider can be booked on the given
	// "YYYY-MM-DD" date.
	IsDateBookable(ctx context.Context, providerID, date string) (bool, error)
	// UnbookableDates returns the subset of the given dates that fail the
	// provider's availability rules.
	UnbookableDates(ctx context.Context, providerID string, dates []string) ([]string, error)
	// AddBlock records a new availability block for a provider.
	AddBlock(ctx context.Context, record *models.AvailabilityRecord) error
	// RemoveBlock deletes a block record owned by the provider.
	RemoveBlock(ctx context.Context, id, providerID string) error
	// ListBlocks returns all of a provider's block records.
	ListBlocks(ctx context.Context, providerID string) ([]models.AvailabilityRecord, error)
}
