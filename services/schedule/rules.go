// Package schedule decides whether an instant is bookable at a shop. It performs no I/O.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hairbook/models"
	"hairbook/utils"
)

const (
	// DateLayout is the canonical booking date, "DD-MM-YYYY HH:mm".
	DateLayout = "02-01-2006 15:04"
	// DayLayout is a calendar day, "DD-MM-YYYY".
	DayLayout = "02-01-2006"
)

var (
	ErrClosedDay      = utils.NewError(utils.KindForbidden, "Shop is closed on this day")
	ErrHourNotOffered = utils.NewError(utils.KindForbidden, "Shop does not offer this hour")
	ErrInPast         = utils.NewError(utils.KindValidation, "Cannot book a time in the past")
)

// FormatTimeOfDay renders the hour and minute the way shop hours are stored:
// "9:00" on the hour, otherwise un-padded minutes ("9:5", "14:30").
func FormatTimeOfDay(t time.Time) string {
	return renderHour(t.Hour(), t.Minute())
}

func renderHour(hour, minute int) string {
	if minute == 0 {
		return fmt.Sprintf("%d:00", hour)
	}
	return fmt.Sprintf("%d:%d", hour, minute)
}

// parseHour splits an hour string into its parts. Only strings the renderer produces are accepted.
func parseHour(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("hour %q is not H:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hour %q out of range", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute %q out of range", s)
	}
	if renderHour(hour, minute) != s {
		return 0, 0, fmt.Errorf("hour %q is not canonical, expected %q", s, renderHour(hour, minute))
	}
	return hour, minute, nil
}

// ValidHour reports whether s is an hour string the renderer could have produced.
func ValidHour(s string) bool {
	_, _, err := parseHour(s)
	return err == nil
}

// ValidateWeek checks a shop's weekly schedule before it is stored.
func ValidateWeek(week []models.Weekday) error {
	if len(week) != models.DaysPerWeek {
		return utils.NewError(utils.KindValidation, fmt.Sprintf("Week must have %d days", models.DaysPerWeek))
	}
	for day, wd := range week {
		seen := make(map[string]bool, len(wd.Hours))
		for _, h := range wd.Hours {
			if _, _, err := parseHour(h); err != nil {
				return utils.WrapError(utils.KindValidation, fmt.Sprintf("Invalid hour on %s", time.Weekday(day)), err)
			}
			if seen[h] {
				return utils.NewError(utils.KindValidation, fmt.Sprintf("Duplicate hour %s on %s", h, time.Weekday(day)))
			}
			seen[h] = true
		}
	}
	return nil
}

// ParseDate parses a canonical booking date in loc. Non-canonical input such as "1-6-2025 9:00" is rejected,
// because conflicts are detected by comparing date strings.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, utils.WrapError(utils.KindValidation, "Invalid date, expected DD-MM-YYYY HH:mm", err)
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, utils.NewError(utils.KindValidation, "Invalid date, expected DD-MM-YYYY HH:mm")
	}
	return t, nil
}

// ParseDay parses a "DD-MM-YYYY" day at midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, utils.WrapError(utils.KindValidation, "Invalid day, expected DD-MM-YYYY", err)
	}
	return t, nil
}

// FormatDate renders t in the canonical booking layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// At returns the instant of a stored hour string on the given day.
func At(day time.Time, hour string) (time.Time, error) {
	h, m, err := parseHour(hour)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}

// Check returns nil when instant is bookable at shop, otherwise ErrClosedDay, ErrHourNotOffered
// or ErrInPast, tested in that order. An instant equal to now is bookable.
func Check(shop *models.Shop, instant, now time.Time) error {
	day := shop.Day(instant.Weekday())
	if !day.Open {
		return ErrClosedDay
	}
	rendered := FormatTimeOfDay(instant)
	offered := false
	for _, h := range day.Hours {
		if h == rendered {
			offered = true
			break
		}
	}
	if !offered {
		return ErrHourNotOffered
	}
	if instant.Before(now) {
		return ErrInPast
	}
	return nil
}

// IsBookable reports whether Check accepts the instant.
func IsBookable(shop *models.Shop, instant, now time.Time) bool {
	return Check(shop, instant, now) == nil
}
