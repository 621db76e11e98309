package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityRepo "ceremo/database/repository/availability"
	"ceremo/models"
	"ceremo/utils"

	"go.uber.org/zap"
)

// DefaultAvailabilityService is the production implementation backed by the
// availability repository.
type DefaultAvailabilityService struct {
	Repo availabilityRepo.AvailabilityRepository

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

func NewDefaultAvailabilityService(repo availabilityRepo.AvailabilityRepository) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Repo: repo, now: time.Now}
}

func (s *DefaultAvailabilityService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// IsDateBookable reports whether the provider can be booked on the date.
func (s *DefaultAvailabilityService) IsDateBookable(ctx context.Context, providerID, date string) (bool, error) {
	blocked, err := s.UnbookableDates(ctx, providerID, []string{date})
	if err != nil {
		return false, err
	}
	return len(blocked) == 0, nil
}

// UnbookableDates returns the subset of dates that fail the provider's rules.
func (s *DefaultAvailabilityService) UnbookableDates(ctx context.Context, providerID string, dates []string) ([]string, error) {
	records, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability records for provider %s: %w", providerID, err)
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(utils.DateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		parsed = append(parsed, t)
	}

	return BlockedDates(records, parsed, s.clock()), nil
}

// AddBlock validates and stores a new availability block.
func (s *DefaultAvailabilityService) AddBlock(ctx context.Context, record *models.AvailabilityRecord) error {
	if !record.Valid() {
		return errors.New("availability record must set exactly one of specificDate or dayOfWeek")
	}
	if record.SpecificDate != nil {
		if _, err := time.Parse(utils.DateLayout, *record.SpecificDate); err != nil {
			return fmt.Errorf("invalid specific date %q: %w", *record.SpecificDate, err)
		}
	}
	record.IsBlocked = true

	if err := s.Repo.Create(ctx, record); err != nil {
		return err
	}
	utils.GetLogger().Info("availability block added",
		zap.String("providerID", record.ProviderID), zap.String("recordID", record.ID))
	return nil
}

// RemoveBlock deletes a block record owned by the provider.
func (s *DefaultAvailabilityService) RemoveBlock(ctx context.Context, id, providerID string) error {
	return s.Repo.Delete(ctx, id, providerID)
}

// ListBlocks returns all of a provider's block records.
func (s *DefaultAvailabilityService) ListBlocks(ctx context.Context, providerID string) ([]models.AvailabilityRecord, error) {
	return s.Repo.ListByProvider(ctx, providerID)
}
