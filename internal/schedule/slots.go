// Package schedule generates the candidate grid of bookable appointment
// slots. Generation is a pure function of the supplied clock value, so
// callers inject "now" rather than reading wall-clock time themselves.
package schedule

import (
	"time"

	"mindcare-backend/config"
)

// Rules are the grid parameters: how far ahead slots are offered, which
// hours of a business day are bookable, and the minimum lead time.
type Rules struct {
	WindowDays int
	FirstHour  int
	LastHour   int
	LeadTime   time.Duration
}

// DefaultRules returns the standard grid: 30 days ahead, hourly starts
// 09:00 through 17:00 on weekdays, bookable no less than one hour out.
func DefaultRules() Rules {
	return Rules{
		WindowDays: 30,
		FirstHour:  9,
		LastHour:   17,
		LeadTime:   time.Hour,
	}
}

// RulesFromConfig builds Rules from the booking configuration section.
func RulesFromConfig(cfg *config.BookingConfig) Rules {
	return Rules{
		WindowDays: cfg.WindowDays,
		FirstHour:  cfg.FirstHour,
		LastHour:   cfg.LastHour,
		LeadTime:   time.Duration(cfg.LeadTimeMinutes) * time.Minute,
	}
}

// Generate returns the ascending sequence of candidate slot start times
// for the rolling window beginning at the start of now's calendar day.
// Saturdays and Sundays are skipped, and any slot closer than the lead
// time to now is discarded.
func Generate(now time.Time, rules Rules) []time.Time {
	earliest := now.Add(rules.LeadTime)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := make([]time.Time, 0, rules.WindowDays*(rules.LastHour-rules.FirstHour+1))
	for d := 0; d <= rules.WindowDays; d++ {
		day := dayStart.AddDate(0, 0, d)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := rules.FirstHour; hour <= rules.LastHour; hour++ {
			slot := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			if slot.Before(earliest) {
				continue
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// OnGrid reports whether ts falls exactly on a slot the generator could
// emit regardless of lead time: a weekday, on the hour, within business
// hours. Booking uses this to reject off-grid timestamps.
func OnGrid(ts time.Time, rules Rules) bool {
	if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if ts.Minute() != 0 || ts.Second() != 0 || ts.Nanosecond() != 0 {
		return false
	}
	return ts.Hour() >= rules.FirstHour && ts.Hour() <= rules.LastHour
}

// DateKey is the display format used to group slots by calendar day.
const DateKey = "02.01.2006"

// GroupByDate buckets slots under their DD.MM.YYYY calendar-day key.
// Order within each bucket follows the order of the input.
func GroupByDate(slots []time.Time) map[string][]time.Time {
	grouped := make(map[string][]time.Time)
	for _, s := range slots {
		key := s.Format(DateKey)
		grouped[key] = append(grouped[key], s)
	}
	return grouped
}
