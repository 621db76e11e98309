package availability

import (
	"time"

	"ceremo/models"
	"ceremo/utils"
)

// DateBlocked reports whether a date is blocked under the given records.
// A date is blocked when it matches a specific-date block, when its weekday
// matches a recurring block, or when it falls before today. Overlapping
// blocks are idempotent; the answer is simply "blocked". Days are compared
// as calendar dates, so the zones of the two instants never skew the answer.
func DateBlocked(records []models.AvailabilityRecord, date, today time.Time) bool {
	dateStr := date.Format(utils.DateLayout)
	if dateStr < today.Format(utils.DateLayout) {
		return true
	}

	weekday := int(date.Weekday())

	for _, rec := range records {
		if !rec.IsBlocked {
			continue
		}
		if rec.SpecificDate != nil && *rec.SpecificDate == dateStr {
			return true
		}
		if rec.DayOfWeek != nil && *rec.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

// BlockedDates returns the subset of dates that are blocked, preserving
// order. Every date in a multi-day range must pass independently; callers
// reject the whole range when this is non-empty.
func BlockedDates(records []models.AvailabilityRecord, dates []time.Time, today time.Time) []string {
	var blocked []string
	for _, d := range dates {
		if DateBlocked(records, d, today) {
			blocked = append(blocked, d.Format(utils.DateLayout))
		}
	}
	return blocked
}
